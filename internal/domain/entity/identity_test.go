package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity_RolTalCual(t *testing.T) {
	ident, err := ParseIdentity([]byte(`{"id":1,"email":"a@b.com","role":" admin "}`))
	require.NoError(t, err)
	assert.Equal(t, Role(" admin "), ident.Role)
	assert.NotEqual(t, RoleAdmin, ident.Role)
	assert.False(t, ident.Role.Known())
}

func TestParseIdentity_TiposInesperados(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Identity
	}{
		{"rol numérico", `{"id":1,"role":5}`, Identity{ID: "1"}},
		{"id objeto", `{"id":{"oid":"x"},"role":"donor"}`, Identity{Role: RoleDonor}},
		{"nombre y email no string", `{"id":"u1","name":["A"],"email":false,"role":"patient"}`, Identity{ID: "u1", Role: RolePatient}},
		{"id null", `{"id":null,"name":"Ana"}`, Identity{Name: "Ana"}},
		{"objeto vacío", `{}`, Identity{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ident, err := ParseIdentity([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want.ID, ident.ID)
			assert.Equal(t, tc.want.Name, ident.Name)
			assert.Equal(t, tc.want.Email, ident.Email)
			assert.Equal(t, tc.want.Role, ident.Role)
			assert.JSONEq(t, tc.raw, string(ident.Raw), "el registro crudo se conserva intacto")
		})
	}
}

func TestParseIdentity_RechazaNoObjetos(t *testing.T) {
	for _, raw := range []string{"", "null", `["admin"]`, `"admin"`, "42", "{not-json"} {
		_, err := ParseIdentity([]byte(raw))
		assert.Error(t, err, raw)
	}
}

func TestIdentity_EncodeDevuelveElCrudo(t *testing.T) {
	raw := `{"id":{"oid":"x"},"role":5,"extra":true}`
	ident, err := ParseIdentity([]byte(raw))
	require.NoError(t, err)
	out, err := ident.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
