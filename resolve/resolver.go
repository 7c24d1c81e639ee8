package resolve

import (
	"context"
	"reflect"
	"time"

	"github.com/cockroachdb/apd"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"

	"github.com/jackc/pgxconv/config"
	"github.com/jackc/pgxconv/convert"
	"github.com/jackc/pgxconv/convert/builtin"
	"github.com/jackc/pgxconv/converr"
	"github.com/jackc/pgxconv/convlog"
	"github.com/jackc/pgxconv/oid"
	"github.com/jackc/pgxconv/wire"
)

// Factory is the open/generic-wrapper mechanism of spec §4.5 step 5: a
// policy offered the (appType, wireID) pair after the numeric and text
// paths have both declined, in registration order. The array decorator is
// shipped as a Factory because it is generic over the element wire type.
type Factory interface {
	TryResolve(chain *DefaultResolver, appType reflect.Type, wireID oid.WireTypeId, catalog *oid.TypeCatalog) (*ConverterInfo, error)
}

// DefaultResolver is the resolver chain described in spec §4.5. It is safe
// for concurrent use once built: the default-pair table, numeric/text
// registries, and factory list are fixed at construction.
type DefaultResolver struct {
	Config config.Config
	// Logger is optional (spec §2.1: "the resolver chain accept an
	// optional Logger and emit Trace/Debug level events at resolution and
	// at format negotiation fallback"). Nil means silent, matching
	// paramwriter.Writer's own Logger field.
	Logger convlog.Logger

	factories []Factory

	defaultWireFor map[reflect.Type]oid.WireTypeName
	numericTable   map[reflect.Type]map[oid.WireTypeName]BoxedConverter
	textTable      map[reflect.Type]BoxedConverter
	otherTable     map[reflect.Type]map[oid.WireTypeName]BoxedConverter
}

// NewDefaultResolver builds a default resolver: the default-pair table, the
// numeric/text/other registries and the array factory. Each call returns a
// new, independent instance; the package keeps no shared global resolver.
// cfg flows into the timestamp converters for the infinity-conversion gate
// (spec §6).
func NewDefaultResolver(cfg config.Config) *DefaultResolver {
	r := &DefaultResolver{
		Config:         cfg,
		defaultWireFor: map[reflect.Type]oid.WireTypeName{},
		numericTable:   map[reflect.Type]map[oid.WireTypeName]BoxedConverter{},
		textTable:      map[reflect.Type]BoxedConverter{},
		otherTable:     map[reflect.Type]map[oid.WireTypeName]BoxedConverter{},
	}
	r.registerNumericDefaults()
	r.registerText()
	r.registerOthers()
	r.factories = []Factory{&ArrayFactory{}}
	return r
}

// AddFactory appends a factory to the chain, after the builtins already
// registered. First-registered-wins on ties (spec §4.5 "Tie-breaks").
func (r *DefaultResolver) AddFactory(f Factory) { r.factories = append(r.factories, f) }

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

func (r *DefaultResolver) registerNumericDefaults() {
	r.defaultWireFor[typeOf[int32]()] = "int4"
	r.defaultWireFor[typeOf[int64]()] = "int8"
	r.defaultWireFor[typeOf[int16]()] = "int2"
	r.defaultWireFor[typeOf[int8]()] = "int2"
	r.defaultWireFor[typeOf[uint8]()] = "int2" // spec §4.5 default-pair table: byte -> int2 via coercion
	r.defaultWireFor[typeOf[string]()] = "text"

	registerInt[int8](r)
	registerInt[int16](r)
	registerInt[int32](r)
	registerInt[int64](r)
	registerInt[int](r)
	registerInt[uint8](r)
	registerInt[uint16](r)
	registerInt[uint32](r)
	registerInt[uint64](r)
	registerInt[uint](r)
}

// registerInt builds, for numeric application type T, the three
// converters that target int2/int4/int8: an exact-match primitive when
// widths line up, a convert.Coerce decorator otherwise (spec §4.5 step 3).
func registerInt[T convert.Integer](r *DefaultResolver) {
	t := typeOf[T]()
	r.numericTable[t] = map[oid.WireTypeName]BoxedConverter{
		"int2": numericConverterFor[T, int16](builtin.Int2{}, "int2"),
		"int4": numericConverterFor[T, int32](builtin.Int4{}, "int4"),
		"int8": numericConverterFor[T, int64](builtin.Int8{}, "int8"),
	}
}

// numericConverterFor returns inner boxed directly when T and U are the
// same type (exact match, no decoration needed) and a boxed
// convert.Coerce[T, U] otherwise.
func numericConverterFor[T convert.Integer, U convert.Integer](inner convert.Converter[U], wireName string) BoxedConverter {
	var t T
	var u U
	if reflect.TypeOf(t) == reflect.TypeOf(u) {
		if c, ok := any(inner).(convert.Converter[T]); ok {
			return Box[T](c)
		}
	}
	return Box[T](convert.NewCoerce[T, U](inner, wireName))
}

func (r *DefaultResolver) registerText() {
	r.textTable[typeOf[string]()] = Box[string](builtin.Text{})
	r.textTable[typeOf[[]rune]()] = Box[[]rune](builtin.RuneSlice{})
	// rune and int32 share a reflect.Type in Go; without an out-of-band
	// discriminator the resolver cannot default-pair them differently, so
	// a bare rune value defaults to the numeric int4 path (registerNumericDefaults)
	// and single-rune text resolution is only reachable by registering
	// builtin.Rune directly against a caller-held ConverterInfo (see
	// DESIGN.md open-question decision). The same holds for []rune, which is
	// []int32: Resolve consults this table only when a wire type is present
	// (given, or filled in from the default-pair table) and is not a
	// non-text name, so a bare []int32 reaches the array factory instead.
}

func (r *DefaultResolver) registerOthers() {
	r.otherTable[typeOf[bool]()] = map[oid.WireTypeName]BoxedConverter{"bool": Box[bool](builtin.Bool{})}
	r.otherTable[typeOf[float32]()] = map[oid.WireTypeName]BoxedConverter{"float4": Box[float32](builtin.Float4{})}
	r.otherTable[typeOf[float64]()] = map[oid.WireTypeName]BoxedConverter{"float8": Box[float64](builtin.Float8{})}
	r.otherTable[typeOf[[]byte]()] = map[oid.WireTypeName]BoxedConverter{"bytea": Box[[]byte](builtin.Bytea{})}
	r.otherTable[typeOf[uuid.UUID]()] = map[oid.WireTypeName]BoxedConverter{"uuid": Box[uuid.UUID](builtin.UUID{})}
	r.otherTable[typeOf[decimal.Decimal]()] = map[oid.WireTypeName]BoxedConverter{"numeric": Box[decimal.Decimal](builtin.NumericDecimal{})}
	r.otherTable[typeOf[apd.Decimal]()] = map[oid.WireTypeName]BoxedConverter{"numeric": Box[apd.Decimal](builtin.NumericAPD{})}
	r.otherTable[typeOf[time.Time]()] = map[oid.WireTypeName]BoxedConverter{
		"timestamp":   Box[time.Time](builtin.Timestamp{Config: r.Config}),
		"timestamptz": Box[time.Time](builtin.Timestamptz{Config: r.Config}),
	}
	r.defaultWireFor[typeOf[bool]()] = "bool"
	r.defaultWireFor[typeOf[float32]()] = "float4"
	r.defaultWireFor[typeOf[float64]()] = "float8"
	r.defaultWireFor[typeOf[[]byte]()] = "bytea"
	r.defaultWireFor[typeOf[uuid.UUID]()] = "uuid"
	r.defaultWireFor[typeOf[decimal.Decimal]()] = "numeric"
	r.defaultWireFor[typeOf[apd.Decimal]()] = "numeric"
	r.defaultWireFor[typeOf[time.Time]()] = "timestamptz"
}

// Resolve implements spec §4.5's ordered chain. wireID may be nil, in which
// case the default-pair table fills it in from appType. The reverse is not
// done: a nil appType is never filled in from wireID, and such a request
// fails with converr.ResolutionFailed.
func (r *DefaultResolver) Resolve(appType reflect.Type, wireID *oid.WireTypeId, catalog *oid.TypeCatalog) (*ConverterInfo, error) {
	if appType == nil && wireID == nil {
		return nil, converr.New(converr.ResolutionFailed, "", "", nil)
	}

	var canonicalWire oid.WireTypeId
	isDefault := false
	haveWire := false
	if wireID == nil {
		// No default pair registered is not fatal here: composite application
		// types (slices, for instance) are never keyed directly into
		// defaultWireFor — they are resolved structurally by a Factory below,
		// which derives its own wire identity from the recursively resolved
		// element instead of from this lookup.
		if name, ok := r.defaultWireFor[appType]; ok {
			canonicalWire = oid.Name(name)
			isDefault = true
			haveWire = true
		}
	} else {
		canonicalWire = *wireID
		haveWire = true
	}

	// The numeric/text/other tables are keyed by WireTypeName, not Oid: a
	// caller holding only a session OID (e.g. from a server ParameterDescription,
	// spec §4.4's reason for TypeCatalog existing at all) must be reverse-resolved
	// to a name before any of those lookups can match, the same way
	// wire.Writer.WriteAsOid does the forward (name -> Oid) translation at
	// write time. Without catalog (nil), an Oid-only request cannot be matched
	// by name: it skips the numeric table and the by-name otherTable lookup,
	// leaving only the text table, a single-registration otherTable entry, and
	// the factories.
	var lookupName oid.WireTypeName
	haveLookupName := false
	if haveWire {
		if canonicalWire.IsName() {
			lookupName = canonicalWire.NameValue()
			haveLookupName = true
		} else if catalog != nil {
			if n, err := catalog.NameOf(canonicalWire.OidValue()); err == nil {
				lookupName = n
				haveLookupName = true
			}
		}
	}
	if haveLookupName {
		if name, ok := r.defaultWireFor[appType]; ok && lookupName == name {
			isDefault = true
		}
	}

	if appType != nil {
		if haveLookupName {
			if byWire, ok := r.numericTable[appType]; ok {
				if conv, ok := byWire[lookupName]; ok {
					info := &ConverterInfo{
						Converter:         conv,
						PreferredWireType: oid.Name(lookupName),
						PreferredFormat:   wire.Binary,
						IsDefaultMapping:  isDefault,
					}
					r.traceResolved(appType, info)
					return info, nil
				}
			}
		}

		if conv, ok := r.textTable[appType]; ok && haveWire && (!haveLookupName || lookupName == "text") {
			info := &ConverterInfo{
				Converter:         conv,
				PreferredWireType: oid.Name("text"),
				PreferredFormat:   wire.Binary,
				IsDefaultMapping:  isDefault,
			}
			r.traceResolved(appType, info)
			return info, nil
		}

		if byWire, ok := r.otherTable[appType]; ok {
			if haveLookupName {
				if conv, ok := byWire[lookupName]; ok {
					info := &ConverterInfo{
						Converter:         conv,
						PreferredWireType: oid.Name(lookupName),
						PreferredFormat:   wire.Binary,
						IsDefaultMapping:  isDefault,
					}
					r.traceResolved(appType, info)
					return info, nil
				}
			}
			// Only safe to pick blind when there is exactly one registration
			// for this app type; picking among several without a resolved
			// wire name would be an arbitrary map-iteration-order choice
			// (e.g. time.Time has both timestamp and timestamptz here).
			if len(byWire) == 1 {
				for name, conv := range byWire {
					info := &ConverterInfo{
						Converter:         conv,
						PreferredWireType: oid.Name(name),
						PreferredFormat:   wire.Binary,
						IsDefaultMapping:  isDefault,
					}
					r.traceResolved(appType, info)
					return info, nil
				}
			}
		}
	}

	for _, f := range r.factories {
		info, err := f.TryResolve(r, appType, canonicalWire, catalog)
		if err != nil {
			return nil, err
		}
		if info != nil {
			info.IsDefaultMapping = isDefault
			r.traceResolved(appType, info)
			return info, nil
		}
	}

	return nil, converr.New(converr.ResolutionFailed, canonicalWire.String(), appTypeName(appType), nil)
}

// traceResolved emits the one Trace event spec §2.1 requires "at
// resolution": which application type was paired with which wire type, and
// whether that pairing was the resolver's own default. Silent when Logger
// is nil, matching paramwriter.Writer.trace.
func (r *DefaultResolver) traceResolved(appType reflect.Type, info *ConverterInfo) {
	if r.Logger == nil {
		return
	}
	r.Logger.Log(context.Background(), convlog.Trace, "resolved", map[string]any{
		"app_type":  appTypeName(appType),
		"wire_type": info.PreferredWireType.String(),
		"default":   info.IsDefaultMapping,
	})
}

func appTypeName(t reflect.Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
