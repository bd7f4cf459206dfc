package dsl

import (
	"context"
	"sort"
	"sync"

	sortedskema "github.com/reoring/sortedskema"
	"github.com/reoring/sortedskema/i18n"
	js "github.com/reoring/sortedskema/jsonschema"
)

// ContainerKind names a container family in the registry.
type ContainerKind string

const (
	KindSortedMap  ContainerKind = "sorted_map"
	KindSortedList ContainerKind = "sorted_list"
	KindSortedSet  ContainerKind = "sorted_set"
)

// ContainerBuilder constructs an erased container schema from element schemas.
// Builders reject argument counts they do not support with an
// unsupported_parameterization issue rather than guessing.
type ContainerBuilder func(elems ...AnyAdapter) (AnyAdapter, error)

var (
	registryMu sync.RWMutex
	registry   = map[ContainerKind]ContainerBuilder{}
)

// RegisterContainer binds a kind name to a builder. Registration is explicit;
// there is no scanning or implicit discovery, so the full set of supported
// kinds is visible in one place.
func RegisterContainer(kind ContainerKind, b ContainerBuilder) {
	if b == nil {
		return
	}
	registryMu.Lock()
	registry[kind] = b
	registryMu.Unlock()
}

// BuildContainer looks up the kind and invokes its builder with the element
// schemas. Unknown kinds and unsupported arities surface as
// unsupported_parameterization issues.
func BuildContainer(kind ContainerKind, elems ...AnyAdapter) (AnyAdapter, error) {
	registryMu.RLock()
	b, ok := registry[kind]
	registryMu.RUnlock()
	if !ok {
		return AnyAdapter{}, unsupportedParam("unknown container kind: " + string(kind))
	}
	return b(elems...)
}

// ContainerKinds returns the registered kind names in ascending order.
func ContainerKinds() []ContainerKind {
	registryMu.RLock()
	out := make([]ContainerKind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	registryMu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func unsupportedParam(hint string) error {
	return sortedskema.Issues{sortedskema.Issue{
		Path:    "/",
		Code:    sortedskema.CodeUnsupportedParameterization,
		Message: i18n.T(sortedskema.CodeUnsupportedParameterization, nil),
		Hint:    hint,
	}}
}

func init() {
	RegisterContainer(KindSortedMap, func(elems ...AnyAdapter) (AnyAdapter, error) {
		switch len(elems) {
		case 0:
			return SchemaOf(SortedMapAny()), nil
		case 1:
			return SchemaOf(SortedMapOf[any](adapterSchema{ad: elems[0]})), nil
		default:
			return AnyAdapter{}, unsupportedParam("sorted_map takes at most one value schema")
		}
	})
	RegisterContainer(KindSortedList, func(elems ...AnyAdapter) (AnyAdapter, error) {
		switch len(elems) {
		case 0:
			return SchemaOf(SortedListAny()), nil
		case 1:
			return SchemaOf(SortedListAnyOf(adapterSchema{ad: elems[0]})), nil
		default:
			return AnyAdapter{}, unsupportedParam("sorted_list takes at most one element schema")
		}
	})
	RegisterContainer(KindSortedSet, func(elems ...AnyAdapter) (AnyAdapter, error) {
		switch len(elems) {
		case 0:
			return SchemaOf(SortedSetAny()), nil
		case 1:
			return SchemaOf(SortedSetAnyOf(adapterSchema{ad: elems[0]})), nil
		default:
			return AnyAdapter{}, unsupportedParam("sorted_set takes at most one element schema")
		}
	})
}

// adapterSchema projects an AnyAdapter back into Schema[any] so erased element
// schemas can feed the typed container builders.
type adapterSchema struct{ ad AnyAdapter }

func (a adapterSchema) Parse(ctx context.Context, v any) (any, error) { return a.ad.Parse(ctx, v) }

func (a adapterSchema) ParseWithMeta(ctx context.Context, v any) (sortedskema.Decoded[any], error) {
	out, err := a.ad.Parse(ctx, v)
	return sortedskema.Decoded[any]{Value: out, Presence: sortedskema.PresenceMap{"/": sortedskema.PresenceSeen}}, err
}

func (a adapterSchema) TypeCheck(ctx context.Context, v any) error { return nil }
func (a adapterSchema) RuleCheck(ctx context.Context, v any) error { return nil }

func (a adapterSchema) Validate(ctx context.Context, v any) error {
	_, err := a.ad.Parse(ctx, v)
	return err
}

func (a adapterSchema) ValidateValue(ctx context.Context, v any) error {
	return a.ad.ValidateValue(ctx, v)
}

func (a adapterSchema) JSONSchema() (*js.Schema, error) { return a.ad.JSONSchema() }
