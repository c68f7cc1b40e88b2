package meta_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propgraph/meta"
)

type orderItem struct {
	Name  string
	Price int
}

type order struct {
	Items    []orderItem
	Shipping map[string]string
}

type homeAddress struct {
	City    string
	ZipCode string
}

type customer struct {
	UserName string
	Home     homeAddress
	Orders   []order
}

func TestTypeViewGetterType(t *testing.T) {
	tv := meta.ViewType(reflect.TypeOf(customer{}), meta.NewCache())

	tests := []struct {
		path string
		want reflect.Type
	}{
		{"userName", reflect.TypeOf("")},
		{"orders", reflect.TypeOf([]order{})},
		{"orders[0]", reflect.TypeOf(order{})},
		{"orders[0].items", reflect.TypeOf([]orderItem{})},
		{"orders[0].items[1]", reflect.TypeOf(orderItem{})},
		{"orders[0].items[1].price", reflect.TypeOf(0)},
		{"orders[0].shipping", reflect.TypeOf(map[string]string{})},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := tv.GetterType(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := tv.GetterType("orders[0].nope")
	assert.ErrorIs(t, err, meta.ErrPropertyNotFound)
}

func TestTypeViewSetterType(t *testing.T) {
	tv := meta.ViewType(reflect.TypeOf(customer{}), meta.NewCache())

	got, err := tv.SetterType("orders")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf([]order{}), got)

	got, err = tv.SetterType("userName")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), got)

	got, err = tv.SetterType("orders[0].items[1].price")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(0), got)
}

func TestTypeViewHasAccessors(t *testing.T) {
	tv := meta.ViewType(reflect.TypeOf(customer{}), meta.NewCache())

	assert.True(t, tv.HasGetter("orders[0].items[0].name"))
	assert.True(t, tv.HasSetter("orders[0].items[0].name"))
	assert.False(t, tv.HasGetter("orders[0].nope"))
	assert.False(t, tv.HasGetter("nope.items"))
	assert.False(t, tv.HasGetter("orders[0].items[0].name."))
}

func TestTypeViewFindProperty(t *testing.T) {
	tv := meta.ViewType(reflect.TypeOf(customer{}), meta.NewCache())

	tests := []struct {
		path  string
		loose bool
		want  string
		ok    bool
	}{
		{"USERNAME", false, "userName", true},
		{"USER_NAME", true, "userName", true},
		{"USER_NAME", false, "", false},
		{"home.city", false, "home.city", true},
		{"HOME.CITY", false, "home.city", true},
		{"HOME.ZIP_CODE", true, "home.zipCode", true},
		{"missing", false, "", false},
		{"home.missing", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := tv.FindProperty(tt.path, tt.loose)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
