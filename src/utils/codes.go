package utils

import (
	"acs/src/db"
	"acs/src/types"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const (
	codeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeRandomLen   = 5
	codeMiddleLen   = 4
	codeFiller      = "XXXX"
	maxCodeAttempts = 10
)

type CodeKind string

const (
	CODE_PASSENGER CodeKind = "PA"
	CODE_OPERATOR  CodeKind = "OP"
	CODE_AGENT     CodeKind = "AG"
	CODE_ADMIN     CodeKind = "AD"
	CODE_REQUEST   CodeKind = "RQ"
	CODE_QUOTE     CodeKind = "QT"
	CODE_BOOKING   CodeKind = "BK"
	CODE_INVOICE   CodeKind = "INV"
	CODE_PAYMENT   CodeKind = "PMT"
	CODE_PAX       CodeKind = "PAX"
)

func RoleCodeKind(role types.Role) CodeKind {
	switch role {
	case types.ROLE_OPERATOR:
		return CODE_OPERATOR
	case types.ROLE_AGENT:
		return CODE_AGENT
	case types.ROLE_ADMIN:
		return CODE_ADMIN
	default:
		return CODE_PASSENGER
	}
}

// ExistsFunc answers whether a candidate code is already taken in the
// collection the code is destined for.
type ExistsFunc func(code string) (bool, error)

// ExistsInModel builds the uniqueness probe for a GORM model with a Code column.
func ExistsInModel(model any) ExistsFunc {
	return func(code string) (bool, error) {
		var count int64
		err := db.GetDb().Model(model).Where("code = ?", code).Count(&count).Error
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}
}

func randomSegment(n int) string {
	max := big.NewInt(int64(len(codeCharset)))
	var sb strings.Builder
	for range n {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken
			log.Fatalf("random source unavailable: %s\n", err.Error())
		}
		sb.WriteByte(codeCharset[idx.Int64()])
	}
	return sb.String()
}

func codeMiddle(source string) string {
	normalized := strings.ReplaceAll(slug.Make(source), "-", "")
	normalized = strings.ToUpper(normalized)
	if normalized == "" {
		return codeFiller
	}
	if len(normalized) > codeMiddleLen {
		normalized = normalized[:codeMiddleLen]
	}
	return normalized
}

// BuildCode assembles one PREFIX-MIDDLE-RANDOM candidate without checking
// the store for collisions.
func BuildCode(kind CodeKind, source string) string {
	return fmt.Sprintf("%s-%s-%s", kind, codeMiddle(source), randomSegment(codeRandomLen))
}

// FallbackCode trades readability for liveness when the uniqueness probe
// cannot be reached. No role or entity uses the UN prefix, so these codes
// cannot collide with generated ones.
func FallbackCode() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("UN-%s-%s", ts, randomSegment(codeRandomLen))
}

// GenerateCode produces a collision-checked code for the given kind. On a
// collision it retries with fresh randomness up to maxCodeAttempts before
// failing with GenerationError. If the probe itself errors the store is
// assumed unreachable and a fallback code is issued instead.
func GenerateCode(kind CodeKind, source string, exists ExistsFunc) (string, error) {
	for range maxCodeAttempts {
		code := BuildCode(kind, source)
		taken, err := exists(code)
		if err != nil {
			log.Printf("Uniqueness check for %s failed, issuing fallback code: %s\n", kind, err.Error())
			return FallbackCode(), nil
		}
		if !taken {
			return code, nil
		}
	}
	return "", &types.GenerationError{Kind: string(kind), Attempts: maxCodeAttempts}
}

// NewEntityCode generates a code verified against the model's own table.
func NewEntityCode(kind CodeKind, source string, model any) (string, error) {
	return GenerateCode(kind, source, ExistsInModel(model))
}

// EmailSequenceCode derives the ordered identifier for records that hang off
// a parent entity, e.g. RQ-SMIT-A1B2C-email-00001.
func EmailSequenceCode(parentCode string, seq int) string {
	return fmt.Sprintf("%s-email-%05d", parentCode, seq)
}
