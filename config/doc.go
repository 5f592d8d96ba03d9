/*
Package config describes where a dataapi client sends its statements.

A Config names the Aurora cluster (resource ARN), the Secrets Manager secret
holding database credentials, and the database. It can come from the environment:

	_ = config.LoadEnv()        // optional .env file
	cfg := config.FromEnv()     // DATA_API_ARN, DATA_API_SECRET_ARN, DATA_API_DATABASE, ...
	if err := cfg.Validate(); err != nil {
	    log.Fatal(err)
	}

or from a YAML file with several named databases:

	file, err := config.LoadFile("dataapi.yaml")
	cfg, err := file.Lookup("reporting")

When Region is empty the region of the resource ARN is used.
*/
package config
