package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"import", "export", "portfolio", "star", "unstar", "follow", "unfollow"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "preseries", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestImportCommand_Flags(t *testing.T) {
	for _, name := range []string{"file", "portfolio-name", "column-id", "column-name",
		"column-country", "column-domain", "summary-columns", "skip-rows"} {
		require.NotNil(t, importCmd.Flags().Lookup(name), "import command should have --%s flag", name)
	}

	assert.Equal(t, "Known_companies.xlsx", importCmd.Flags().Lookup("known-out").DefValue)
	assert.Equal(t, "Unknown_companies.xlsx", importCmd.Flags().Lookup("unknown-out").DefValue)
}

func TestExportCommand_Flags(t *testing.T) {
	require.NotNil(t, exportCmd.Flags().Lookup("file"))
	assert.Equal(t, "Companies_data.xlsx", exportCmd.Flags().Lookup("out").DefValue)
}

func TestPortfolioCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range portfolioCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"list", "show", "rename", "delete", "add", "remove"} {
		assert.True(t, names[name], "expected portfolio subcommand %q not found", name)
	}
}

func TestFileFlags_Validate(t *testing.T) {
	f := fileFlags{}
	err := f.validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--column-id or --column-name")

	f = fileFlags{columnName: "A"}
	assert.NoError(t, f.validate())

	f = fileFlags{columnID: "C"}
	assert.NoError(t, f.validate())
}
