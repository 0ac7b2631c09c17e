package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeProgram(t *testing.T, lines ...string) string {
	path := filepath.Join(t.TempDir(), "prog.ls8")
	err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
	assert.NoError(t, err)
	return path
}

func TestRun(t *testing.T) {
	assert := assert.New(t)

	print8 := writeProgram(t,
		"# Print the number 8",
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"01000111 # PRN R0",
		"00000000",
		"00000001 # HLT",
	)
	badOpcode := writeProgram(t, "11111111")
	badSyntax := writeProgram(t, "10000010", "0000002x")
	modZero := writeProgram(t,
		"10000010 # LDI R0,5",
		"00000000",
		"00000101",
		"10100100 # MOD R0,R1",
		"00000000",
		"00000001",
		"00000001 # HLT",
	)
	forever := writeProgram(t,
		"10000010 # LDI R0,0",
		"00000000",
		"00000000",
		"01010100 # JMP R0",
		"00000000",
	)

	table := [](struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}){
		{"no args", []string{}, EXIT_FAILURE, "", "usage:"},
		{"two args", []string{print8, print8}, EXIT_FAILURE, "", "usage:"},
		{"bad flag", []string{"-nope", print8}, EXIT_FAILURE, "", "-nope"},
		{"missing", []string{filepath.Join(t.TempDir(), "missing.ls8")}, EXIT_NOT_FOUND, "", "not found"},
		{"print8", []string{print8}, EXIT_OK, "8\n", ""},
		{"syntax", []string{badSyntax}, EXIT_FAILURE, "", "line 2"},
		{"opcode", []string{badOpcode}, EXIT_FAILURE, "", "pc 0x00"},
		{"mod zero", []string{modZero}, EXIT_FAILURE, "", "line 4"},
		{"limit", []string{"-limit", "100", forever}, EXIT_FAILURE, "", "instruction limit"},
		{"timeout", []string{"-timeout", "10ms", forever}, EXIT_FAILURE, "", "deadline"},
		{"trace", []string{"-t", print8}, EXIT_OK, "8\n", "TRACE: 03 | 47 00 00 |"},
		{"watch", []string{"-w", "ir == HLT", print8}, EXIT_OK, "8\n", "TRACE: 05 |"},
	}

	for _, entry := range table {
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		code := run("ls8", entry.args, stdout, stderr)
		assert.Equal(entry.code, code, entry.name)
		assert.Equal(entry.stdout, stdout.String(), entry.name)
		if len(entry.stderr) == 0 {
			assert.Empty(stderr.String(), entry.name)
		} else {
			assert.Contains(stderr.String(), entry.stderr, entry.name)
		}
	}
}

func TestRun_WatchOnly(t *testing.T) {
	assert := assert.New(t)

	path := writeProgram(t,
		"10000010 # LDI R0,8",
		"00000000",
		"00001000",
		"00000001 # HLT",
	)

	stderr := &bytes.Buffer{}
	code := run("ls8", []string{"-w", "ir == PRN", path}, &bytes.Buffer{}, stderr)
	assert.Equal(EXIT_OK, code)
	assert.Empty(stderr.String())
}
