package httpclient

import (
	"context"
	"fmt"
	"time"

	"wallet_connector/internal/domain/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// execute performs one HTTP exchange with the provider. It honors the
// context deadline when one is set, otherwise falls back to the client's
// default timeout. Non-2xx responses come back as *entity.NetworkError.
func execute(ctx context.Context, client *fasthttp.Client, method, requestURL string, body []byte, timeout time.Duration) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(method)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	if len(body) > 0 {
		req.SetBody(body)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = client.DoDeadline(req, resp, deadline)
	} else {
		err = client.DoTimeout(req, resp, timeout)
	}
	if err != nil {
		return nil, &entity.NetworkError{URL: requestURL, Err: fmt.Errorf("failed to execute request: %w", err)}
	}

	rawBody := resp.Body()
	if resp.StatusCode() < fasthttp.StatusOK || resp.StatusCode() >= fasthttp.StatusMultipleChoices {
		return nil, &entity.NetworkError{URL: requestURL, StatusCode: resp.StatusCode(), Body: string(rawBody)}
	}

	// resp.Body() is released with the response, copy it out
	out := make([]byte, len(rawBody))
	copy(out, rawBody)
	return out, nil
}
