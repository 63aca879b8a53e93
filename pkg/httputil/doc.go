// Package httputil provides retry support for outgoing HTTP calls.
//
// [Retry] runs an operation until it succeeds, returns an error that is not
// marked retryable, or runs out of attempts. Callers mark transient failures
// (transport errors, 429 and 5xx responses) with [Retryable]:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    ...
//	})
//
// The delay doubles after each failed attempt. Cancelling ctx stops the
// backoff wait and returns ctx.Err().
package httputil
