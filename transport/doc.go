/*
Package transport defines the RPC boundary of dataapi.

Transport is the subset of the RDS Data API used by the client: single statements
and batched statements. The AWS SDK client implements it directly:

	client, err := transport.NewRDSDataClient(ctx, cfg)

Two other implementations exist:
  - transport/mock records calls and returns canned outputs for unit tests
  - transport/local runs statements against SQLite for offline development

Retries, timeouts and credentials belong to the transport, not to dataapi.
*/
package transport
