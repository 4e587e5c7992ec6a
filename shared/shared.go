package shared

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"slotlink/shared/cache"
	"slotlink/shared/constant"
	"slotlink/shared/dto"
	"slotlink/shared/timezone"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map and
// stamps the modification audit columns.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now().UTC()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// FilterByOwnerAndID scopes an id lookup to the rows owned by owner.
func FilterByOwnerAndID(owner, id, fieldOwner, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: fieldOwner, Value: owner, Operator: dto.FilterOperatorEq, Table: table},
			dto.Filter{Field: fieldID, Value: id, Operator: dto.FilterOperatorEq, Table: table},
		},
	}
}

// BuildCacheKey joins a cache namespace and its identifying parts.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

// BuildCacheKeyWithQuery derives a deterministic key from pagination and filter values.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	where, args := filter.GetWhereClause()

	keys := make([]string, 0, len(args))
	for key := range args {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, fmt.Sprintf("%s=%v", key, args[key]))
	}

	return BuildCacheKey(
		prefix,
		strconv.Itoa(params.Page),
		strconv.Itoa(params.Limit),
		params.SortBy,
		params.SortDir,
		where,
		strings.Join(values, ","),
	)
}

// InvalidateCaches removes every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// InvalidateLinkCaches evicts everything derived from a link's row: the owner's cached copy, the
// owner listings and the public pages of the given slugs.
func InvalidateLinkCaches(ctx context.Context, redisCache cache.RedisCache, owner, id string, slugs ...string) {
	if err := redisCache.Delete(ctx, BuildCacheKey(constant.CacheKeyLink, owner, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete link from cache")
	}

	for _, slug := range slugs {
		if slug == constant.Empty {
			continue
		}

		if err := redisCache.Delete(ctx, BuildCacheKey(constant.CacheKeyPublicPage, slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete public page from cache")
		}
	}

	InvalidateCaches(ctx, redisCache, constant.CacheKeyLinks)
	InvalidateCaches(ctx, redisCache, constant.CacheKeyLinkCount)
}

// IsUniqueViolation reports whether err carries a postgres unique_violation, optionally restricted
// to one of the given constraint names.
func IsUniqueViolation(err error, constraints ...string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != constant.PqErrorCodeUniqueViolation {
		return false
	}

	return len(constraints) == 0 || slices.Contains(constraints, pqErr.Constraint)
}
