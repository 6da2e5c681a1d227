package sqlconn

import (
	"database/sql"
	"maps"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/biyonik/go-querykit/dialect"
)

// bindArgs, bir ifadenin parametre torbasını driver'ın beklediği argüman listesine çevirir.
// Anahtarlardaki ":", "@" ve "$" önekleri atılır: ":email" anahtarı sorguda postgres için
// @email, sqlite için :email (veya @email, $email) olarak yazılır.
func bindArgs(dialectName string, params map[string]any) ([]any, error) {
	if len(params) == 0 {
		return nil, nil
	}
	keys := slices.Sorted(maps.Keys(params))

	switch dialectName {
	case dialect.PostgresName:
		named := make(pgx.NamedArgs, len(params))
		for _, key := range keys {
			named[paramName(key)] = params[key]
		}
		return []any{named}, nil
	case dialect.SQLiteName:
		args := make([]any, len(keys))
		for i, key := range keys {
			args[i] = sql.Named(paramName(key), params[key])
		}
		return args, nil
	default:
		return nil, ErrNamedParameters
	}
}

func paramName(key string) string {
	return strings.TrimLeft(key, ":@$")
}
