package domain

import (
	"context"

	"github.com/dagym-lab/backend/pkg/errorx"
	"github.com/dagym-lab/backend/pkg/xcontext"
)

// checkPagination applies the configured default and rejects limits over the
// configured maximum.
func checkPagination(ctx context.Context, offset, limit int) (int, int, error) {
	if offset < 0 || limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative offset or limit")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}
