package uuidgen

import (
	"github.com/google/uuid"
	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
)

// Generator produces random (v4) UUID strings, used for refresh token ids and avatar names.
type Generator struct{}

func NewGenerator() contract.IUUIDGenerator {
	return &Generator{}
}

func (g *Generator) NewUUID() string {
	return uuid.NewString()
}

var _ contract.IUUIDGenerator = (*Generator)(nil)
