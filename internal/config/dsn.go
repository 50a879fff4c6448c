package config

import (
	"net/url"
	"strings"
)

const preparedBinaryParam = "disable_prepared_binary_result"

// PostgresDSN returns DBURL with the prepared binary result flag applied
// when DBDisablePreparedBinary is set. An explicit flag in the URL wins.
func (c Config) PostgresDSN() string {
	return WithPreparedBinaryDisabled(c.DBURL, c.DBDisablePreparedBinary)
}

// WithPreparedBinaryDisabled adds disable_prepared_binary_result=yes to a
// URL-style dsn. Keyword dsns and unparsable input are returned as is.
func WithPreparedBinaryDisabled(dsn string, disable bool) string {
	if !disable {
		return dsn
	}
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return dsn
	}
	q := u.Query()
	if q.Has(preparedBinaryParam) {
		return dsn
	}
	q.Set(preparedBinaryParam, "yes")
	u.RawQuery = q.Encode()
	return u.String()
}

// DatabaseName extracts the database name from a URL or keyword dsn.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		return strings.Trim(u.Path, "/ ")
	}
	for _, kv := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(kv, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}
