package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"buglog/internal/domain"
)

// ParsePageRequest reads pageNo and pageSize. Absent values fall back to the
// defaults applied by domain.PageRequest.Normalize.
func ParsePageRequest(q url.Values) (domain.PageRequest, error) {
	no, err := intParam(q, "pageNo")
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := intParam(q, "pageSize")
	if err != nil {
		return domain.PageRequest{}, err
	}
	return domain.PageRequest{PageNo: no, PageSize: size}.Normalize(), nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrDecode, key)
	}
	return n, nil
}
