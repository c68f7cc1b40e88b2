package object_test

import (
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgraph/meta"
	"propgraph/object"
)

type purchaseItem struct {
	SKU   string
	Price int
}

type shippingNote struct {
	Text string
}

type purchase struct {
	ID    int
	Items []purchaseItem
	Attrs map[string]string
	Note  *shippingNote
	Meta  map[string]any
}

func samplePurchase() *purchase {
	return &purchase{
		ID: 7,
		Items: []purchaseItem{
			{SKU: "mug-11", Price: 10},
			{SKU: "mug-12", Price: 20},
		},
		Attrs: map[string]string{"color": "red"},
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	root := samplePurchase()
	view := object.Wrap(root)

	sku, err := view.Get("items[0].SKU")
	require.NoError(t, err)
	assert.Equal(t, "mug-11", sku)

	require.NoError(t, view.Set("items[1].price", 25))
	price, err := view.Get("items[1].price")
	require.NoError(t, err)
	assert.Equal(t, 25, price)
	assert.Equal(t, 25, root.Items[1].Price)

	require.NoError(t, view.Set("attrs[color]", "blue"))
	color, err := view.Get("attrs[color]")
	require.NoError(t, err)
	assert.Equal(t, "blue", color)

	// Convertible values coerce to the slot type.
	require.NoError(t, view.Set("items[0].price", int8(9)))
	assert.Equal(t, 9, root.Items[0].Price)
}

func TestSetRejectsLossyCoercion(t *testing.T) {
	root := samplePurchase()
	view := object.Wrap(root)

	// Convert would truncate 9.75 to 9 — the write must fail instead.
	require.ErrorIs(t, view.Set("items[0].price", 9.75), meta.ErrNotAssignable)
	assert.Equal(t, 10, root.Items[0].Price)

	// Convert would store "A", the code-point string of 65.
	require.ErrorIs(t, view.Set("attrs[color]", 65), meta.ErrNotAssignable)
	assert.Equal(t, "red", root.Attrs["color"])

	// Value-preserving conversions still pass.
	require.NoError(t, view.Set("items[0].price", 9.0))
	assert.Equal(t, 9, root.Items[0].Price)
}

func TestMapHeldStructIsNotWritable(t *testing.T) {
	// A struct stored by value in a map has no address; a deep write
	// must report that instead of mutating a detached copy.
	notes := map[string]shippingNote{"slip": {Text: "keep"}}

	err := object.Set(notes, "slip.text", "lost")
	require.ErrorIs(t, err, meta.ErrNotAddressable)
	assert.Equal(t, "keep", notes["slip"].Text)
}

func TestGetNullChainShortCircuits(t *testing.T) {
	root := samplePurchase()

	got, err := object.Get(root, "note.text")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetNilThroughNullChainIsNoOp(t *testing.T) {
	root := samplePurchase()

	require.NoError(t, object.Set(root, "note.text", nil))
	assert.Nil(t, root.Note, "a nil write must not materialize intermediates")
}

func TestSetAutoVivifiesIntermediates(t *testing.T) {
	root := &purchase{}

	require.NoError(t, object.Set(root, "note.text", "fragile"))
	require.NotNil(t, root.Note)
	assert.Equal(t, "fragile", root.Note.Text)

	// A nil typed map is created before the key write.
	require.NoError(t, object.Set(root, "attrs.color", "green"))
	assert.Equal(t, "green", root.Attrs["color"])

	// Untyped intermediates grow as map[string]any, level by level.
	require.NoError(t, object.Set(root, "meta.owner.name", "kati"))
	owner, ok := root.Meta["owner"].(map[string]any)
	require.True(t, ok, "owner should be a map: %s", spew.Sdump(root.Meta))
	assert.Equal(t, "kati", owner["name"])

	got, err := object.Get(root, "meta.owner.name")
	require.NoError(t, err)
	assert.Equal(t, "kati", got)
}

type liveFeed struct {
	Events chan int
}

func TestSetSurfacesConstructionFailure(t *testing.T) {
	root := &liveFeed{}

	err := object.Set(root, "events.pending", 1)
	require.Error(t, err)

	var cerr *object.ConstructionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "events.pending", cerr.Property)
	require.ErrorIs(t, err, object.ErrNoDefaultConstructor)
}

func TestSequenceIndexErrors(t *testing.T) {
	root := samplePurchase()
	view := object.Wrap(root)

	_, err := view.Get("items[2]")
	require.ErrorIs(t, err, object.ErrIndexOutOfRange)

	_, err = view.Get("items[-1]")
	require.ErrorIs(t, err, object.ErrInvalidIndex)

	_, err = view.Get("items[first]")
	require.ErrorIs(t, err, object.ErrInvalidIndex)

	err = view.Set("items[2]", purchaseItem{})
	require.ErrorIs(t, err, object.ErrIndexOutOfRange)
}

func TestMapMissingKeyIsAbsent(t *testing.T) {
	root := samplePurchase()
	view := object.Wrap(root)

	got, err := view.Get("attrs[missing]")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = view.Get("attrs.missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIndexedSetIntoNilMap(t *testing.T) {
	root := &purchase{}

	err := object.Set(root, "attrs[color]", "red")
	require.ErrorIs(t, err, meta.ErrNotAssignable)
}

type clashingDoc struct{}

func (clashingDoc) GetTitle() string { return "article" }
func (clashingDoc) IsTitle() string  { return "yes" }

func TestAmbiguousAccessorFailsOnUse(t *testing.T) {
	_, err := object.Get(clashingDoc{}, "title")
	require.ErrorIs(t, err, meta.ErrAmbiguousAccessor)
}

type account struct {
	name string
}

func (a *account) GetName() string  { return a.name }
func (a *account) SetName(v string) { a.name = v }

func TestMethodAccessors(t *testing.T) {
	root := &account{}
	view := object.Wrap(root)

	require.NoError(t, view.Set("name", "treasury"))

	got, err := view.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "treasury", got)
	assert.Equal(t, "treasury", root.name)
}

func TestAppendGrowsSliceInPlace(t *testing.T) {
	root := samplePurchase()

	seq, err := object.Wrap(root).ViewOf("items")
	require.NoError(t, err)
	require.True(t, seq.IsSequence())

	require.NoError(t, seq.Append(purchaseItem{SKU: "mug-13", Price: 30}))
	require.Len(t, root.Items, 3)
	assert.Equal(t, "mug-13", root.Items[2].SKU)

	require.NoError(t, seq.AppendAll([]any{
		purchaseItem{SKU: "mug-14", Price: 40},
		purchaseItem{SKU: "mug-15", Price: 50},
	}))
	assert.Len(t, root.Items, 5)

	require.ErrorIs(t, object.Wrap(root).Append(purchaseItem{}), object.ErrUnsupportedOperation)
}

func TestViewMetadata(t *testing.T) {
	root := samplePurchase()
	root.Meta = map[string]any{"tag": "featured"}
	view := object.Wrap(root)

	assert.ElementsMatch(t, []string{"ID", "items", "attrs", "note", "meta"}, view.GetterNames())
	assert.ElementsMatch(t, []string{"ID", "items", "attrs", "note", "meta"}, view.SetterNames())

	assert.True(t, view.HasGetter("items[0].price"))
	assert.True(t, view.HasSetter("note.text"))
	assert.False(t, view.HasGetter("missing"))

	typ, err := view.GetterType("items[0].price")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(0), typ)

	// Live values refine an otherwise untyped declaration.
	typ, err = view.GetterType("meta.tag")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), typ)

	// A null chain falls back to declared types.
	typ, err = view.GetterType("note.text")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), typ)

	canonical, ok := view.FindProperty("ATTRS", false)
	require.True(t, ok)
	assert.Equal(t, "attrs", canonical)
}

func TestNullViewDegrades(t *testing.T) {
	view := object.Wrap(nil)
	require.True(t, view.IsNull())

	got, err := view.Get("anything.at.all")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, view.Set("anything", 1))
	assert.Nil(t, view.GetterNames())
	assert.False(t, view.HasGetter("anything"))
}
