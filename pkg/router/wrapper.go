package router

import (
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) http.HandlerFunc {
	return func(w http.ResponseWriter, httpReq *http.Request) {
		if httpReq.Method != method {
			http.NotFound(w, httpReq)
			return
		}

		ctx := router.newContext(httpReq, w)

		func() {
			for _, middleware := range router.befores {
				newCtx, err := middleware(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			var req Request
			if err := bindRequest(httpReq, method, &req); err != nil {
				xcontext.SetError(ctx, errorx.New(errorx.BadRequest, "Cannot bind the request"))
				return
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			xcontext.SetResponse(ctx, resp)
		}()

		for _, closer := range router.closers {
			closer(ctx)
		}

		writeResponse(ctx)
	}
}

func bindRequest(httpReq *http.Request, method string, req any) error {
	switch method {
	case http.MethodGet:
		return bindQuery(httpReq.URL.Query(), req)
	case http.MethodPost:
		if !strings.HasPrefix(httpReq.Header.Get("Content-Type"), "application/json") {
			return nil
		}

		if err := json.NewDecoder(httpReq.Body).Decode(req); err != nil {
			return err
		}

		return nil
	}

	return nil
}

// bindQuery fills a request struct from url query parameters, matching fields
// by their json tag.
func bindQuery(values url.Values, req any) error {
	structValue := reflect.ValueOf(req).Elem()
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		tag, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if tag == "" || tag == "-" {
			continue
		}

		raw := values.Get(tag)
		if raw == "" {
			continue
		}

		fieldValue := structValue.Field(i)
		switch fieldValue.Kind() {
		case reflect.String:
			fieldValue.SetString(raw)

		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return err
			}
			fieldValue.SetInt(n)

		case reflect.Float32, reflect.Float64:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return err
			}
			fieldValue.SetFloat(f)

		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return err
			}
			fieldValue.SetBool(b)
		}
	}

	return nil
}
