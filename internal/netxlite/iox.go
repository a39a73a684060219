package netxlite

//
// I/O extensions
//

import (
	"context"
	"errors"
	"io"
)

// ReadAllContext is like io.ReadAll but reads r in a background
// goroutine. This function returns earlier if the context is
// cancelled, in which case the background goroutine keeps reading
// until the connection bound to r is closed and we discard the result.
//
// The [*http.Client] closes the connection for us when the context
// bound to the request is done, so the goroutine does not leak for
// long when r is an HTTP response body.
func ReadAllContext(ctx context.Context, r io.Reader) ([]byte, error) {
	datach, errch := make(chan []byte, 1), make(chan error, 1) // buffers
	go func() {
		data, err := io.ReadAll(r)
		if errors.Is(err, io.EOF) {
			// wrapped io.EOF is not handled by io.ReadAll
			err = nil
		}
		if err != nil {
			errch <- err
			return
		}
		datach <- data
	}()
	select {
	case data := <-datach:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-errch:
		return nil, err
	}
}
