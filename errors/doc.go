/*
Package errors provides semantic error types for the dataapi library.

Every failure surfaces to the caller; nothing is retried or swallowed inside the
library. The sentinels can be checked with the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrTransport        = errors.New("transport failure")
	    ErrMalformedPayload = errors.New("malformed payload")
	    ErrShapeMismatch    = errors.New("shape mismatch")
	    ErrInvalidInput     = errors.New("invalid input")
	)

Usage:

	rows, err := client.Execute(ctx, "SELECT data FROM docs WHERE id = :id", models.Params{"id": 7})
	if err != nil {
	    switch {
	    case errors.IsMalformedPayload(err):
	        // a json/jsonb column held text that is not JSON
	    case errors.IsTransport(err):
	        // the Data API call failed; the SDK error is still reachable with errors.As
	    }
	    return err
	}

TransportError keeps the transport's error as its Unwrap target, so SDK
exception types remain matchable:

	var bre *types.BadRequestException
	if stderrors.As(err, &bre) {
	    // SQL rejected by the database
	}
*/
package errors
