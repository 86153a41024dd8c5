// Package test contains assertion helpers shared by package tests.
package test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/flexpeg"
)

// ExpectErrorCode fails the test unless e is a *flexpeg.Error with expected code.
func ExpectErrorCode(t testing.TB, expected int, e error) *flexpeg.Error {
	t.Helper()
	var fe *flexpeg.Error
	require.True(t, errors.As(e, &fe), "expecting error code %d, got %v", expected, e)
	require.Equal(t, expected, fe.Code, "unexpected error: %s", fe.Message)
	return fe
}

// ExpectErrorPos fails the test unless e is a *flexpeg.Error with expected code and position.
func ExpectErrorPos(t testing.TB, expected, line, col int, e error) *flexpeg.Error {
	t.Helper()
	fe := ExpectErrorCode(t, expected, e)
	require.Equal(t, line, fe.Line, "error line: %s", fe.Message)
	require.Equal(t, col, fe.Col, "error col: %s", fe.Message)
	return fe
}

// ExpectCodes fails the test unless notices have exactly the expected codes in order.
func ExpectCodes(t testing.TB, expected []int, notices []*flexpeg.Error) {
	t.Helper()
	got := make([]int, len(notices))
	for i, n := range notices {
		got[i] = n.Code
	}
	if len(expected) == 0 {
		expected = []int{}
	}
	require.Equal(t, expected, got)
}
