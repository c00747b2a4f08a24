package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testFlagA    = &Option{Spelling: "-flag-a", Kind: KindFlag}
	testFlagB    = &Option{Spelling: "-flag-b", Kind: KindFlag}
	testNoFlagA  = &Option{Spelling: "-no-flag-a", Kind: KindFlag}
	testOutput   = &Option{Spelling: "-o", Kind: KindSeparate}
	testDefine   = &Option{Spelling: "-D", Kind: KindJoined}
	testSanitize = &Option{Spelling: "-sanitize=", Kind: KindCommaJoined}
	testFramework = &Option{Spelling: "-F", Kind: KindJoinedOrSeparate}
	testGFlag    = &Option{Spelling: "-g", Kind: KindFlag, Group: "g"}
	testGNone    = &Option{Spelling: "-gnone", Kind: KindFlag, Group: "g"}
	testAlias    = &Option{Spelling: "-flag-alias", Kind: KindFlag, Alias: testFlagA}
)

func testTable() *Table {
	return NewTable([]*Option{
		testFlagA, testFlagB, testNoFlagA, testOutput, testDefine,
		testSanitize, testFramework, testGFlag, testGNone, testAlias,
	})
}

func TestParseBasics(t *testing.T) {
	parser := NewParser(testTable())
	parsed, err := parser.Parse([]string{
		"a.swift", "-flag-a", "-o", "out", "-DFOO", "-sanitize=address,thread",
		"-Fdir1", "-F", "dir2", "-", "b.swift",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.swift", "-", "b.swift"}, parsed.AllInputs())

	arg, ok := parsed.GetLastArgument(testOutput)
	require.True(t, ok)
	assert.Equal(t, "out", arg)

	defines := parsed.GetAll(testDefine)
	require.Len(t, defines, 1)
	assert.Equal(t, "FOO", defines[0].Argument())

	san, ok := parsed.GetLast(testSanitize)
	require.True(t, ok)
	assert.Equal(t, []string{"address", "thread"}, san.Arguments())

	frameworks := parsed.GetAll(testFramework)
	require.Len(t, frameworks, 2)
	assert.Equal(t, "dir1", frameworks[0].Argument())
	assert.Equal(t, "dir2", frameworks[1].Argument())
}

func TestParseErrors(t *testing.T) {
	parser := NewParser(testTable())

	_, err := parser.Parse([]string{"-bogus"})
	var unknown *UnknownOptionError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "-bogus", unknown.Spelling)

	_, err = parser.Parse([]string{"-o"})
	var missing *MissingArgumentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "-o", missing.Spelling)
}

func TestAliasResolvesToCanonical(t *testing.T) {
	parser := NewParser(testTable())
	parsed, err := parser.Parse([]string{"-flag-alias"})
	require.NoError(t, err)
	assert.True(t, parsed.HasArgument(testFlagA))
}

func TestHasFlagLastOccurrenceWins(t *testing.T) {
	parser := NewParser(testTable())

	parsed, err := parser.Parse([]string{"-flag-a", "-no-flag-a"})
	require.NoError(t, err)
	assert.False(t, parsed.HasFlag(testFlagA, testNoFlagA, true))

	parsed, err = parser.Parse([]string{"-no-flag-a", "-flag-a"})
	require.NoError(t, err)
	assert.True(t, parsed.HasFlag(testFlagA, testNoFlagA, false))

	parsed, err = parser.Parse(nil)
	require.NoError(t, err)
	assert.True(t, parsed.HasFlag(testFlagA, testNoFlagA, true))
}

func TestGroupQueries(t *testing.T) {
	parser := NewParser(testTable())
	parsed, err := parser.Parse([]string{"-g", "-gnone"})
	require.NoError(t, err)

	last, ok := parsed.GetLastInGroup("g")
	require.True(t, ok)
	assert.Equal(t, testGNone, last.Option)
}

func TestConsumptionTracking(t *testing.T) {
	parser := NewParser(testTable())
	parsed, err := parser.Parse([]string{"-flag-a", "-flag-b", "-o", "out"})
	require.NoError(t, err)

	parsed.HasArgument(testFlagA)

	unused := parsed.UnconsumedOptions()
	require.Len(t, unused, 2)
	assert.Equal(t, testFlagB, unused[0].Option)
	assert.Equal(t, testOutput, unused[1].Option)

	parsed.GetLastArgument(testOutput)
	parsed.HasArgument(testFlagB)
	assert.Empty(t, parsed.UnconsumedOptions())
}

func TestEraseArgument(t *testing.T) {
	parser := NewParser(testTable())
	parsed, err := parser.Parse([]string{"-flag-a", "-flag-b", "-flag-a"})
	require.NoError(t, err)

	parsed.EraseArgument(testFlagA)
	assert.False(t, parsed.HasArgument(testFlagA))
	assert.True(t, parsed.HasArgument(testFlagB))
}
