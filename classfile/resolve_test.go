package classfile

import (
	"errors"
	"math"
	"testing"
)

// testRawPool assembles the raw table of a small class referencing
// java/lang/Math.max:(II)I plus a few loadable constants.
func testRawPool() []RawConstant {
	return []RawConstant{
		RawUtf8("java/lang/Math"),       // 1
		RawClass(1),                     // 2
		RawUtf8("max"),                  // 3
		RawUtf8("(II)I"),                // 4
		RawNameAndType(3, 4),            // 5
		RawMethodRef(2, 5),              // 6
		RawInteger(42),                  // 7
		RawLong(1 << 40),                // 8
		RawUnusable(),                   // 9 (phantom slot)
		RawUtf8("hello"),                // 10
		RawString(10),                   // 11
		RawDouble(math.Float64bits(.5)), // 12
		RawUnusable(),                   // 13
	}
}

func testPool(t *testing.T) *ConstantPool {
	t.Helper()
	pool, err := ResolvePool(testRawPool())
	if err != nil {
		t.Fatalf("ResolvePool() error = %v", err)
	}
	return pool
}

func TestResolvePoolIndexAlignment(t *testing.T) {
	pool := testPool(t)

	if got := pool.Len(); got != 13 {
		t.Fatalf("Len() = %d, want 13", got)
	}

	// The slot after a Long must stay unusable so later indices keep
	// their on-disk numbering.
	e, err := pool.EntryAt(9)
	if err != nil {
		t.Fatalf("EntryAt(9) error = %v", err)
	}
	if _, ok := e.(UnusableEntry); !ok {
		t.Fatalf("EntryAt(9) = %T, want UnusableEntry", e)
	}

	s, err := pool.EntryAt(11)
	if err != nil {
		t.Fatalf("EntryAt(11) error = %v", err)
	}
	str, ok := s.(StringEntry)
	if !ok {
		t.Fatalf("EntryAt(11) = %T, want StringEntry", s)
	}
	if str.Value.Value != "hello" {
		t.Errorf("string value = %q, want %q", str.Value.Value, "hello")
	}
}

func TestResolvePoolMethodRef(t *testing.T) {
	pool := testPool(t)

	m, err := pool.MethodRefAt(6)
	if err != nil {
		t.Fatalf("MethodRefAt(6) error = %v", err)
	}
	if m.Class.Name.Value != "java/lang/Math" {
		t.Errorf("class = %q, want java/lang/Math", m.Class.Name.Value)
	}
	if m.NameAndType.Name.Value != "max" || m.NameAndType.Descriptor.Value != "(II)I" {
		t.Errorf("name and type = %q:%q, want max:(II)I",
			m.NameAndType.Name.Value, m.NameAndType.Descriptor.Value)
	}
	// The composite entry's class name must be the same decoded string
	// the Utf8 slot resolves to.
	u, err := pool.Utf8At(1)
	if err != nil {
		t.Fatalf("Utf8At(1) error = %v", err)
	}
	if m.Class.Name.Value != u.Value {
		t.Errorf("shared Utf8 diverged: %q vs %q", m.Class.Name.Value, u.Value)
	}
}

func TestResolvePoolScalars(t *testing.T) {
	pool := testPool(t)

	e, err := pool.EntryAt(7)
	if err != nil {
		t.Fatalf("EntryAt(7) error = %v", err)
	}
	if got := e.(IntegerEntry).Value; got != 42 {
		t.Errorf("integer = %d, want 42", got)
	}

	l, err := pool.EntryAt(8)
	if err != nil {
		t.Fatalf("EntryAt(8) error = %v", err)
	}
	if got := l.(LongEntry).Value; got != 1<<40 {
		t.Errorf("long = %d, want %d", got, int64(1)<<40)
	}

	d, err := pool.EntryAt(12)
	if err != nil {
		t.Fatalf("EntryAt(12) error = %v", err)
	}
	if got := d.(DoubleEntry).Value; got != 0.5 {
		t.Errorf("double = %g, want 0.5", got)
	}
}

func TestResolvePoolForwardReference(t *testing.T) {
	// A Class entry whose Utf8 name appears later in the table must
	// still resolve.
	raw := []RawConstant{
		RawClass(2),
		RawUtf8("Later"),
	}
	pool, err := ResolvePool(raw)
	if err != nil {
		t.Fatalf("ResolvePool() error = %v", err)
	}
	c, err := pool.ClassAt(1)
	if err != nil {
		t.Fatalf("ClassAt(1) error = %v", err)
	}
	if c.Name.Value != "Later" {
		t.Errorf("class name = %q, want Later", c.Name.Value)
	}
}

func TestResolvePoolErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  []RawConstant
	}{
		{
			name: "index zero",
			raw:  []RawConstant{RawClass(0)},
		},
		{
			name: "index out of range",
			raw:  []RawConstant{RawClass(9)},
		},
		{
			name: "wrong kind",
			raw: []RawConstant{
				RawInteger(1),
				RawClass(1), // name points at an Integer
			},
		},
		{
			name: "self cycle",
			raw:  []RawConstant{RawClass(1)},
		},
		{
			name: "mutual cycle",
			raw: []RawConstant{
				RawClass(2),
				RawClass(1),
			},
		},
		{
			name: "invalid method handle kind",
			raw: []RawConstant{
				RawUtf8("C"),
				RawClass(1),
				RawUtf8("f"),
				RawUtf8("()V"),
				RawNameAndType(3, 4),
				RawMethodRef(2, 5),
				RawMethodHandle(10, 6),
			},
		},
		{
			name: "method handle wrong referent",
			raw: []RawConstant{
				RawInteger(7),
				RawMethodHandle(5, 1), // invokeVirtual of an Integer
			},
		},
		{
			name: "unknown tag",
			raw:  []RawConstant{{Tag: TagKind(13)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolvePool(tt.raw)
			if !errors.Is(err, ErrMalformedPool) {
				t.Fatalf("ResolvePool() error = %v, want ErrMalformedPool", err)
			}
		})
	}
}

func TestResolvePoolSharedEntryResolvesOnce(t *testing.T) {
	// Two member refs through the same Class and NameAndType slots.
	raw := []RawConstant{
		RawUtf8("pkg/Owner"),  // 1
		RawClass(1),           // 2
		RawUtf8("value"),      // 3
		RawUtf8("I"),          // 4
		RawNameAndType(3, 4),  // 5
		RawFieldRef(2, 5),     // 6
		RawMethodRef(2, 5),    // 7
	}
	pool, err := ResolvePool(raw)
	if err != nil {
		t.Fatalf("ResolvePool() error = %v", err)
	}
	f, err := pool.FieldRefAt(6)
	if err != nil {
		t.Fatalf("FieldRefAt(6) error = %v", err)
	}
	m, err := pool.MethodRefAt(7)
	if err != nil {
		t.Fatalf("MethodRefAt(7) error = %v", err)
	}
	if f.Class != m.Class || f.NameAndType != m.NameAndType {
		t.Error("shared slots resolved to different values")
	}
}

func TestPoolKindError(t *testing.T) {
	pool := testPool(t)

	_, err := pool.ClassAt(1) // slot 1 is Utf8
	var kindErr *PoolKindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("ClassAt(1) error = %v, want *PoolKindError", err)
	}
	if kindErr.Want != TagClass || kindErr.Got != TagUtf8 {
		t.Errorf("kind error = want %s got %s", kindErr.Want, kindErr.Got)
	}
	if !errors.Is(err, ErrMalformedPool) {
		t.Error("PoolKindError does not unwrap to ErrMalformedPool")
	}
}

func TestPoolIndexError(t *testing.T) {
	pool := testPool(t)

	for _, idx := range []uint16{0, 14, 200} {
		_, err := pool.EntryAt(idx)
		var idxErr *PoolIndexError
		if !errors.As(err, &idxErr) {
			t.Fatalf("EntryAt(%d) error = %v, want *PoolIndexError", idx, err)
		}
		if idxErr.Index != idx {
			t.Errorf("index in error = %d, want %d", idxErr.Index, idx)
		}
	}
}

func TestLoadableAt(t *testing.T) {
	pool := testPool(t)

	for _, idx := range []uint16{2, 7, 8, 11, 12} {
		if _, err := pool.LoadableAt(idx); err != nil {
			t.Errorf("LoadableAt(%d) error = %v", idx, err)
		}
	}
	// Utf8 and member refs are not loadable.
	for _, idx := range []uint16{1, 5, 6} {
		if _, err := pool.LoadableAt(idx); !errors.Is(err, ErrMalformedPool) {
			t.Errorf("LoadableAt(%d) error = %v, want ErrMalformedPool", idx, err)
		}
	}
}

func TestResolvePoolMethodHandle(t *testing.T) {
	raw := []RawConstant{
		RawUtf8("pkg/Impl"),  // 1
		RawClass(1),          // 2
		RawUtf8("run"),       // 3
		RawUtf8("()V"),       // 4
		RawNameAndType(3, 4), // 5
		RawMethodRef(2, 5),   // 6
		RawMethodHandle(uint8(RefInvokeVirtual), 6), // 7
	}
	pool, err := ResolvePool(raw)
	if err != nil {
		t.Fatalf("ResolvePool() error = %v", err)
	}
	h, err := pool.MethodHandleAt(7)
	if err != nil {
		t.Fatalf("MethodHandleAt(7) error = %v", err)
	}
	if h.Kind != RefInvokeVirtual {
		t.Errorf("kind = %v, want invokeVirtual", h.Kind)
	}
	ref, ok := h.Referent.(MethodRefEntry)
	if !ok {
		t.Fatalf("referent = %T, want MethodRefEntry", h.Referent)
	}
	if ref.NameAndType.Name.Value != "run" {
		t.Errorf("referent method = %q, want run", ref.NameAndType.Name.Value)
	}
}
