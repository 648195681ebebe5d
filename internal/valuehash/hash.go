package valuehash

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"io"
	"math"
	"sync"

	"github.com/goccy/go-reflect"
)

// maxIndirections bounds how many pointers, slices, maps and interfaces are
// followed along one path. Cyclic values are hashed up to that depth.
const maxIndirections = 16

var (
	// valueHashMapMutex is a mutex for the valueHashMap.
	valueHashMapMutex = sync.RWMutex{}

	// valueHashMap caches hash functions by type name.
	valueHashMap = map[string]func(any) int{}
)

// GetOrCreateValueHash returns a hash function for values of type V.
//
// Values that are deeply equal produce equal hashes: pointers are followed
// rather than hashed by address, map entries are combined regardless of
// iteration order, and both zeros of a float hash alike.
func GetOrCreateValueHash[V any]() func(any) int {
	typ := reflect.TypeOf((*V)(nil)).Elem()
	if typ.Kind() == reflect.Interface {
		return hashDynamic
	}
	return getOrCreateValueHashType(typ)
}

// TypeHash returns a hash that depends only on the type V.
// It suits types whose equality is opaque to reflection.
func TypeHash[V any]() int {
	return hashString(reflect.TypeOf((*V)(nil)).Elem().String())
}

// hashDynamic resolves the hash function from the dynamic type of v.
func hashDynamic(v any) int {
	if v == nil {
		return 0
	}
	return getOrCreateValueHashType(reflect.TypeOf(v))(v)
}

func getOrCreateValueHashType(typ reflect.Type) func(any) int {
	name := typ.String()

	valueHashMapMutex.RLock()
	if f, ok := valueHashMap[name]; ok {
		valueHashMapMutex.RUnlock()
		return f
	}

	valueHashMapMutex.RUnlock()
	valueHashMapMutex.Lock()
	defer valueHashMapMutex.Unlock()
	if f, ok := valueHashMap[name]; ok {
		return f
	}

	f := createValueHash(typ.Kind())
	valueHashMap[name] = f
	return f
}

// createValueHash creates an FNV-1a based hash function for the given kind.
func createValueHash(kind reflect.Kind) func(any) int {
	switch kind {
	case reflect.Bool:
		return func(v any) int {
			var b [1]byte
			if reflect.ValueOf(v).Bool() {
				b[0] = 1
			}
			return hash64(b[:])
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(v any) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(reflect.ValueOf(v).Int()))
			return hash64(b[:])
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return func(v any) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], reflect.ValueOf(v).Uint())
			return hash64(b[:])
		}
	case reflect.Float32, reflect.Float64:
		return func(v any) int {
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], floatBits(reflect.ValueOf(v).Float()))
			return hash64(b[:])
		}
	case reflect.String:
		return func(v any) int {
			return hashString(reflect.ValueOf(v).String())
		}
	default:
		return func(v any) int {
			h := hash64BufferPool.Get().(hash.Hash64)
			defer func() {
				h.Reset()
				hash64BufferPool.Put(h)
			}()
			w := walker{h: h}
			w.write(reflect.ValueOf(v), 0)
			return int(h.Sum64())
		}
	}
}

// walker feeds the structure of a value into h.
type walker struct {
	h   hash.Hash64
	buf [8]byte
}

func (w *walker) writeUint64(u uint64) {
	binary.BigEndian.PutUint64(w.buf[:], u)
	_, _ = w.h.Write(w.buf[:])
}

func (w *walker) write(v reflect.Value, depth int) {
	if !v.IsValid() {
		w.writeUint64(0)
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			w.writeUint64(1)
		} else {
			w.writeUint64(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.writeUint64(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.writeUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		w.writeUint64(floatBits(v.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		w.writeUint64(floatBits(real(c)))
		w.writeUint64(floatBits(imag(c)))
	case reflect.String:
		w.writeUint64(uint64(v.Len()))
		_, _ = io.WriteString(w.h, v.String())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			w.write(v.Field(i), depth)
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			w.write(v.Index(i), depth)
		}
	case reflect.Slice:
		if depth >= maxIndirections {
			return
		}
		w.writeUint64(uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			w.write(v.Index(i), depth+1)
		}
	case reflect.Map:
		if depth >= maxIndirections {
			return
		}
		w.writeUint64(uint64(v.Len()))
		var sum uint64
		for _, key := range v.MapKeys() {
			entry := walker{h: fnv.New64a()}
			entry.write(key, depth+1)
			entry.write(v.MapIndex(key), depth+1)
			sum += entry.h.Sum64()
		}
		w.writeUint64(sum)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			w.writeUint64(0)
			return
		}
		if depth >= maxIndirections {
			return
		}
		w.writeUint64(1)
		w.write(v.Elem(), depth+1)
	case reflect.Chan, reflect.UnsafePointer:
		w.writeUint64(uint64(v.Pointer()))
	case reflect.Func:
		// funcs are deeply equal only when both are nil
		if v.IsNil() {
			w.writeUint64(0)
		} else {
			w.writeUint64(1)
		}
	}
}

// floatBits returns the bits of f with negative zero folded into positive zero.
func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// hash64BufferPool is a pool for 64-bit FNV-1a hash objects.
var hash64BufferPool = sync.Pool{
	New: func() any {
		return fnv.New64a()
	},
}

// hash64 computes a 64-bit FNV-1a hash of the given byte slice.
func hash64(b []byte) int {
	h := hash64BufferPool.Get().(hash.Hash64)
	defer func() {
		h.Reset()
		hash64BufferPool.Put(h)
	}()
	_, _ = h.Write(b)
	return int(h.Sum64())
}

// hashString computes a 64-bit FNV-1a hash of the given string.
func hashString(s string) int {
	h := hash64BufferPool.Get().(hash.Hash64)
	defer func() {
		h.Reset()
		hash64BufferPool.Put(h)
	}()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64())
}
