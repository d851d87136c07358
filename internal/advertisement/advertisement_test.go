package advertisement

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "storefront-console/internal/types/advertisement"
	myErr "storefront-console/internal/types/errors"
	"storefront-console/internal/types/record"
)

func decode(t *testing.T, raw string) record.Record {
	t.Helper()

	var r record.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestFromRecord(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Advertisement
	}{
		{
			name: "полная запись",
			raw: `{"id":"7","name":"Лампа","description":"настольная","price":1200.5,` +
				`"createdAt":"2024-03-01T10:00:00Z","views":15,"likes":3,"imageUrl":"https://x/a.png","createdByUser":true}`,
			want: Advertisement{
				ID: "7", Name: "Лампа", Description: "настольная", Price: 1200.5,
				CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
				Views:     15, Likes: 3, ImageURL: "https://x/a.png", CreatedByUser: true,
			},
		},
		{
			name: "числовой id и пустое имя",
			raw:  `{"id":12,"name":"   ","price":100}`,
			want: Advertisement{ID: "12", Name: DefaultName, Price: 100},
		},
		{
			name: "отрицательные и битые числа",
			raw:  `{"id":"1","name":"x","price":-5,"views":"abc","likes":-1}`,
			want: Advertisement{ID: "1", Name: "x"},
		},
		{
			name: "дробные просмотры округляются вниз",
			raw:  `{"id":"1","name":"x","views":10.9,"likes":"4"}`,
			want: Advertisement{ID: "1", Name: "x", Views: 10, Likes: 4},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FromRecord(decode(t, tc.raw)))
		})
	}
}

func TestExcerpt(t *testing.T) {
	short, cut := Excerpt("коротко", 100)
	assert.Equal(t, "коротко", short)
	assert.False(t, cut)

	long := strings.Repeat("я", 150)
	got, cut := Excerpt(long, 100)
	assert.True(t, cut)
	assert.Equal(t, strings.Repeat("я", 100)+"...", got)

	exact, cut := Excerpt(strings.Repeat("a", 100), 100)
	assert.False(t, cut)
	assert.Len(t, exact, 100)
}

func TestCanDelete(t *testing.T) {
	assert.True(t, Advertisement{CreatedByUser: true}.CanDelete())
	assert.False(t, Advertisement{}.CanDelete())
}

func TestPatch_Apply(t *testing.T) {
	created := time.Now()
	a := Advertisement{ID: "1", Name: "old", Price: 1, Views: 10, Likes: 2, CreatedAt: created, CreatedByUser: true}

	got := Patch{Name: "new", Description: "d", Price: 5, ImageURL: "i.png"}.Apply(a)

	assert.Equal(t, Advertisement{
		ID: "1", Name: "new", Description: "d", Price: 5, ImageURL: "i.png",
		Views: 10, Likes: 2, CreatedAt: created, CreatedByUser: true,
	}, got)
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var ve *myErr.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.ErrorIs(t, err, myErr.ErrValidation)
	return ve.Fields
}

func TestValidateCreate(t *testing.T) {
	tests := []struct {
		name       string
		form       types.CreateAdvertisement
		wantFields []string
	}{
		{name: "ок", form: types.CreateAdvertisement{Name: "Стул", Price: "10"}},
		{name: "ок с картинкой", form: types.CreateAdvertisement{Name: "Стул", Price: "10", ImageURL: "https://cdn/x.jpeg"}},
		{name: "пустое имя", form: types.CreateAdvertisement{Name: " ", Price: "10"}, wantFields: []string{"name"}},
		{name: "нулевая цена", form: types.CreateAdvertisement{Name: "Стул", Price: "0"}, wantFields: []string{"price"}},
		{name: "цена не число", form: types.CreateAdvertisement{Name: "Стул", Price: "дорого"}, wantFields: []string{"price"}},
		{name: "плохая картинка", form: types.CreateAdvertisement{Name: "Стул", Price: "1", ImageURL: "https://cdn/x.bmp"}, wantFields: []string{"imageUrl"}},
		{name: "все сразу", form: types.CreateAdvertisement{ImageURL: "x"}, wantFields: []string{"name", "price", "imageUrl"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body, err := ValidateCreate(tc.form)

			if len(tc.wantFields) == 0 {
				require.NoError(t, err)
				assert.True(t, body.CreatedByUser)
				assert.Zero(t, body.Views)
				assert.Zero(t, body.Likes)
				assert.Equal(t, tc.form.Name, body.Name)
				return
			}

			fields := fieldsOf(t, err)
			assert.Len(t, fields, len(tc.wantFields))
			for _, f := range tc.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	patch, err := ValidateUpdate(types.UpdateAdvertisement{Name: "Стол", Price: "0", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, Patch{Name: "Стол", Price: 0, Description: "d"}, patch)

	_, err = ValidateUpdate(types.UpdateAdvertisement{Name: "Стол", Price: "-1"})
	assert.Contains(t, fieldsOf(t, err), "price")

	_, err = ValidateUpdate(types.UpdateAdvertisement{Name: "", Price: ""})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "price")
}

func TestIsValidImageURL(t *testing.T) {
	assert.True(t, IsValidImageURL("a.png"))
	assert.True(t, IsValidImageURL("https://x/y.gif"))
	assert.False(t, IsValidImageURL("a.png?w=100"))
	assert.False(t, IsValidImageURL("a.webp"))
}
