package postgres

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// Los nombres de recurso se interpolan en el SQL como identificadores (no hay
// placeholders para identificadores): validar contra esta forma es obligatorio
// antes de cualquier interpolación.
var resourcePattern = regexp.MustCompile(`^items_[a-z0-9_]{1,56}$`)

func validResource(name string) bool {
	return resourcePattern.MatchString(name)
}

// encodeCursor / decodeCursor cursor opaco de paginación sobre offset.
func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeCursor(cursor string) (int, error) {
	if cursor == "" {
		return 0, nil
	}
	raw, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}
