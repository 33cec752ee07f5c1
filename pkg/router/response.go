package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{
		Code: 0,
		Data: data,
	}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func writeResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)

	if err := xcontext.GetError(ctx); err != nil {
		if werr := WriteJson(w, newErrorResponse(err)); werr != nil {
			xcontext.Logger(ctx).Errorf("cannot write the response: %v", werr)
		}

		return
	}

	if resp := xcontext.GetResponse(ctx); resp != nil {
		if err := WriteJson(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
			if werr := WriteJson(w, newErrorResponse(errorx.Unknown)); werr != nil {
				xcontext.Logger(ctx).Errorf("cannot write the error response: %v", werr)
			}
		}
	}
}

func WriteJson(w http.ResponseWriter, resp any) error {
	w.Header().Set("Content-Type", "application/json")

	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
