package gormsql

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mikiasgoitom/articleboard/internal/domain/entity"
)

// translate maps driver errors onto domain errors. The DB must be opened with
// TranslateError so duplicate keys surface as gorm.ErrDuplicatedKey.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, entity.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, entity.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
