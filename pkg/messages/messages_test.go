package messages

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Felix14-v2/fastback/pkg/constants"
)

func TestDefaultBundle(t *testing.T) {
	bundle := Default()

	assert.Equal(t, []string{"en-US", "fr-FR"}, bundle.Locales())

	for _, key := range []string{
		constants.MessageLocalPolicyNotSet,
		constants.MessageRemotePolicyNotSet,
		constants.MessagePruneStarted,
		constants.MessagePruneDone,
		constants.MessagePruneFailed,
	} {
		assert.True(t, bundle.Has(key), key)
	}
}

func TestRender(t *testing.T) {
	bundle := Default()

	assert.Equal(
		t,
		"Pruning old snapshots...",
		bundle.Render("en-US", Localized(constants.MessagePruneStarted)),
	)
	assert.Equal(
		t,
		"Suppression des anciennes sauvegardes...",
		bundle.Render("fr-FR", Localized(constants.MessagePruneStarted)),
	)
	assert.Equal(
		t,
		"Pruning old snapshots...",
		bundle.Render("xx-YY", Localized(constants.MessagePruneStarted)),
	)
	assert.Equal(
		t,
		"Pruning failed: disk is full",
		bundle.Render("en-US", Localized(constants.MessagePruneFailed, "disk is full")),
	)
}

func TestRenderPlural(t *testing.T) {
	bundle := Default()

	assert.Equal(
		t,
		"Pruning finished, 1 snapshot removed.",
		bundle.Render("en-US", Localized(constants.MessagePruneDone, 1)),
	)
	assert.Equal(
		t,
		"Pruning finished, 3 snapshots removed.",
		bundle.Render("en-US", Localized(constants.MessagePruneDone, 3)),
	)
}

func TestLoadRejectsBrokenCatalogs(t *testing.T) {
	base := &fstest.MapFile{Data: []byte(`locale: en-US
messages:
  a.key: "a"
`)}

	testCases := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name:  "no catalogs",
			files: fstest.MapFS{"other/x.yaml": base},
		},
		{
			name: "missing base locale",
			files: fstest.MapFS{"locales/fr-FR.yaml": {Data: []byte(`locale: fr-FR
messages:
  a.key: "a"
`)}},
		},
		{
			name: "locale does not match file name",
			files: fstest.MapFS{
				"locales/en-US.yaml": base,
				"locales/de-DE.yaml": {Data: []byte(`locale: fr-FR
messages:
  a.key: "a"
`)},
			},
		},
		{
			name: "key unknown to base locale",
			files: fstest.MapFS{
				"locales/en-US.yaml": base,
				"locales/fr-FR.yaml": {Data: []byte(`locale: fr-FR
messages:
  b.key: "b"
`)},
			},
		},
		{
			name: "plural without other form",
			files: fstest.MapFS{
				"locales/en-US.yaml": {Data: []byte(`locale: en-US
messages:
  a.key:
    one: "a"
`)},
			},
		},
		{
			name: "empty catalog",
			files: fstest.MapFS{
				"locales/en-US.yaml": {Data: []byte(`locale: en-US
`)},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(tc.files)
			assert.Error(t, err)
		})
	}
}

func TestLoadCustomCatalog(t *testing.T) {
	bundle, err := Load(fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte(`locale: en-US
messages:
  a.key: "hello %s"
`)},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", bundle.Render("en-US", Localized("a.key", "world")))
}
