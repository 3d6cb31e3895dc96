package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolDir(t *testing.T) {
	cases := []struct {
		protocol string
		want     string
		wantErr  bool
	}{
		{protocol: "SSH", want: "SSH"},
		{protocol: "  DICOM ", want: "DICOM"},
		{protocol: "SIP/2.0", want: "SIP_2.0"},
		{protocol: "my proto", want: "my_proto"},
		{protocol: "../etc", want: ".._etc"},
		{protocol: "", wantErr: true},
		{protocol: "..", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.protocol, func(t *testing.T) {
			got, err := protocolDir(tc.protocol)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewRun(t *testing.T) {
	id := uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
	now := time.Date(2024, 3, 1, 12, 30, 5, 0, time.FixedZone("MSK", 3*60*60))

	run, err := newRun("SIP/2.0", "in/corpus", "results", now, id)
	require.NoError(t, err)
	assert.Equal(t, id.String(), run.ID)
	assert.Equal(t, "SIP/2.0", run.Protocol)
	assert.Equal(t, "in/corpus", run.InputPath)
	assert.Equal(t, filepath.Join("results", "SIP_2.0", "20240301T093005Z_0f8fad5b"), run.Dir)
	assert.Equal(t, time.UTC, run.StartedAt.Location())

	_, err = newRun(" ", "", "results", now, id)
	assert.Error(t, err)
}
