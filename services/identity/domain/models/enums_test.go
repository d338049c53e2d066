package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identitydomain "github.com/bookmountain/adelaide-uni-market-place/services/identity/domain"
)

func TestDepartment_RoundTripAndAliases(t *testing.T) {
	for _, d := range Departments {
		got, err := ParseDepartment(d.String())
		require.NoError(t, err, d)
		assert.Equal(t, d, got)
	}
	for alias, want := range departmentAliases {
		got, err := ParseDepartment(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestDegree_RoundTripAndAliases(t *testing.T) {
	for _, d := range Degrees {
		got, err := ParseDegree(d.String())
		require.NoError(t, err, d)
		assert.Equal(t, d, got)
	}
	for alias, want := range degreeAliases {
		got, err := ParseDegree(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestSex_RoundTripAndAliases(t *testing.T) {
	for _, s := range Sexes {
		got, err := ParseSex(s.String())
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}
	for alias, want := range sexAliases {
		got, err := ParseSex(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestNationality_RoundTripAndAliases(t *testing.T) {
	for _, n := range Nationalities {
		got, err := ParseNationality(n.String())
		require.NoError(t, err, n)
		assert.Equal(t, n, got)
	}
	for alias, want := range nationalityAliases {
		got, err := ParseNationality(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestParse_FoldsCaseAndSeparators(t *testing.T) {
	tests := []struct {
		name string
		got  func() (string, error)
		want string
	}{
		{"spaced department", func() (string, error) { d, err := ParseDepartment("  Computer Science "); return string(d), err }, "ComputerScience"},
		{"hyphenated sex", func() (string, error) { s, err := ParseSex("non-binary"); return string(s), err }, "NonBinary"},
		{"underscored sex", func() (string, error) { s, err := ParseSex("PREFER_NOT_TO_SAY"); return string(s), err }, "PreferNotToSay"},
		{"ampersand", func() (string, error) { d, err := ParseDepartment("Nursing & Midwifery"); return string(d), err }, "Nursing"},
		{"dotted", func() (string, error) { n, err := ParseNationality("U.S.A."); return string(n), err }, "UnitedStates"},
		{"upper degree", func() (string, error) { d, err := ParseDegree("PHD"); return string(d), err }, "PhD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnknownIsInvalidInput(t *testing.T) {
	_, err := ParseDepartment("Astrology")
	assert.ErrorIs(t, err, identitydomain.ErrInvalidDepartment)

	_, err = ParseDegree("")
	assert.ErrorIs(t, err, identitydomain.ErrInvalidDegree)

	_, err = ParseSex("x")
	assert.ErrorIs(t, err, identitydomain.ErrInvalidSex)

	_, err = ParseNationality("Atlantis")
	assert.ErrorIs(t, err, identitydomain.ErrInvalidNationality)
}

func TestParseNationality_BlankIsUnset(t *testing.T) {
	n, err := ParseNationality("   ")
	require.NoError(t, err)
	assert.Equal(t, Nationality(""), n)
}
