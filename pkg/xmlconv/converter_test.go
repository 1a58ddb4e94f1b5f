package xmlconv_test

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/ledger-service/pkg/xmlconv"
)

func TestValidateTag(t *testing.T) {
	valid := []string{"data", "result", "_private", "total_items", "a1", "ns:item", "with-dash", "with.dot"}
	for _, tag := range valid {
		assert.NoError(t, xmlconv.ValidateTag(tag), tag)
	}

	invalid := []string{"", "1invalid", "-lead", ".lead", "has space", "bad<", "trailing:", "ünïcode"}
	for _, tag := range invalid {
		err := xmlconv.ValidateTag(tag)
		require.Error(t, err, tag)
		assert.ErrorIs(t, err, xmlconv.ErrInvalidTag)

		var tagErr *xmlconv.InvalidTagError
		require.True(t, errors.As(err, &tagErr))
		assert.Equal(t, tag, tagErr.Tag)
	}
}

func TestArrayToXML_DefaultRoot(t *testing.T) {
	out, err := xmlconv.New().ArrayToXML(xmlconv.Map{{Key: "name", Value: "ledger"}}, xmlconv.DefaultRoot())
	require.NoError(t, err)
	assert.Equal(t, xml.Header+"<data><name>ledger</name></data>", out)
}

func TestArrayToXML_ScalarsKeepOrder(t *testing.T) {
	m := xmlconv.Map{
		{Key: "z", Value: 1},
		{Key: "a", Value: true},
		{Key: "m", Value: 2.5},
		{Key: "n", Value: nil},
		{Key: "s", Value: "a < b & c"},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.Root("result"))
	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+"<result><z>1</z><a>true</a><m>2.5</m><n></n><s>a &lt; b &amp; c</s></result>",
		out)
}

func TestArrayToXML_ListsRepeatKey(t *testing.T) {
	m := xmlconv.Map{
		{Key: "items", Value: []any{"a", "b"}},
		{Key: "ids", Value: []int{7, 8}},
		{Key: "empty", Value: []any{}},
		{Key: "grid", Value: []any{[]any{1, 2}}},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.DefaultRoot())
	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+"<data><items>a</items><items>b</items><ids>7</ids><ids>8</ids><grid><item>1</item><item>2</item></grid></data>",
		out)
}

func TestArrayToXML_NestedMaps(t *testing.T) {
	m := xmlconv.Map{
		{Key: "records", Value: []any{
			map[string]any{"name": "x", "id": 1},
		}},
		{Key: "meta", Value: xmlconv.Map{{Key: "b", Value: 1}, {Key: "a", Value: 2}}},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.DefaultRoot())
	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+"<data><records><id>1</id><name>x</name></records><meta><b>1</b><a>2</a></meta></data>",
		out)
}

func TestArrayToXML_DeeplyNestedOrderedMaps(t *testing.T) {
	m := xmlconv.Map{
		{Key: "ledger", Value: xmlconv.Map{
			{Key: "account", Value: xmlconv.Map{
				{Key: "name", Value: "Main"},
				{Key: "balance", Value: xmlconv.Map{{Key: "minor", Value: int64(-250)}, {Key: "currency", Value: "EUR"}}},
			}},
			{Key: "open", Value: true},
		}},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.Root("result"))
	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+"<result><ledger><account><name>Main</name><balance><minor>-250</minor><currency>EUR</currency></balance></account><open>true</open></ledger></result>",
		out)
}

func TestArrayToXML_ListOfOrderedMaps(t *testing.T) {
	m := xmlconv.Map{
		{Key: "entry", Value: []xmlconv.Map{
			{{Key: "z", Value: 1}, {Key: "a", Value: 2}},
			{{Key: "z", Value: 3}},
		}},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.DefaultRoot())
	require.NoError(t, err)
	assert.Equal(t,
		xml.Header+"<data><entry><z>1</z><a>2</a></entry><entry><z>3</z></entry></data>",
		out)
}

func TestArrayToXML_InvalidRootFailsWithoutOutput(t *testing.T) {
	out, err := xmlconv.New().ArrayToXML(xmlconv.Map{{Key: "a", Value: 1}}, xmlconv.Root("1invalid"))
	require.Error(t, err)
	assert.ErrorIs(t, err, xmlconv.ErrInvalidTag)
	assert.Empty(t, out)
}

func TestArrayToXML_InvalidNestedKeyFailsWithoutOutput(t *testing.T) {
	m := xmlconv.Map{
		{Key: "ok", Value: 1},
		{Key: "records", Value: []any{map[string]any{"9lives": true}}},
	}
	out, err := xmlconv.New().ArrayToXML(m, xmlconv.Root("result"))
	require.Error(t, err)

	var tagErr *xmlconv.InvalidTagError
	require.True(t, errors.As(err, &tagErr))
	assert.Equal(t, "9lives", tagErr.Tag)
	assert.Empty(t, out)
}

func TestArrayToXML_EmptyRootIsInvalid(t *testing.T) {
	_, err := xmlconv.New().ArrayToXML(nil, xmlconv.Root(""))
	assert.ErrorIs(t, err, xmlconv.ErrInvalidTag)
}
