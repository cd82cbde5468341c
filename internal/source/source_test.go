package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"pafinder/internal/program"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const sheet = "\ufeffProgram Name, State ,Tuition,Program Length,GRE Requirement,GPA Requirement,PA-CAT Requirement,PANCE Pass Rate,Accreditation Status,PA Shadowing Hours,Clinical Hours Requirement,Application Deadline,Start Date\n" +
	`Acme PA,TX,"$90,000",28 months,Required,3.0,Not Required,97%,Accredited,80,"1,000 hours",10/1/2025,6/1/2026` + "\n" +
	"\n" +
	`Beta PA,CA,,,Not Required,3.0` + "\n"

func TestParse(t *testing.T) {
	rows, err := Parse(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme PA", rows[0].Get(program.ColumnName))
	assert.Equal(t, "TX", rows[0].Get(program.ColumnState), "header labels are trimmed")
	assert.Equal(t, "$90,000", rows[0].Get(program.ColumnTuition))
	assert.Equal(t, "1,000 hours", rows[0].Get(program.ColumnClinicalHours))

	assert.Equal(t, "Beta PA", rows[1].Get(program.ColumnName))
	assert.Equal(t, "", rows[1].Get(program.ColumnStartDate), "short rows read as empty")
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = Parse(strings.NewReader("<html><body>Sign in</body></html>\n"))
	assert.ErrorIs(t, err, ErrUnrecognizedHeader)
}

func TestParse_IgnoresUnknownColumns(t *testing.T) {
	rows, err := Parse(strings.NewReader("Program Name,Notes\nAcme PA,hello\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	p := program.Normalize(rows[0], 0)
	assert.Equal(t, "Acme PA", p.Name)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sheet), 0644))

	programs, err := Load(context.Background(), Source{FilePath: path}, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, programs, 2)

	assert.Equal(t, "1", programs[0].ID)
	assert.Equal(t, "June", programs[0].StartMonth)
	assert.True(t, programs[0].GRERequired)
	assert.Equal(t, "2", programs[1].ID)
	assert.Equal(t, program.UnknownMonth, programs[1].StartMonth)
	assert.False(t, programs[1].GRERequired)
}

func TestLoad_URL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sheet))
	}))
	defer srv.Close()

	programs, err := Load(context.Background(), Source{URL: srv.URL}, nil)
	require.NoError(t, err)
	assert.Len(t, programs, 2)
}

func TestLoad_URLCharset(t *testing.T) {
	// "Université PA" in windows-1252.
	body := "Program Name,State\nUniversit\xe9 PA,QC\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv; charset=windows-1252")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	programs, err := Load(context.Background(), Source{URL: srv.URL}, nil)
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, "Université PA", programs[0].Name)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("no source", func(t *testing.T) {
		_, err := Load(context.Background(), Source{}, nil)
		assert.ErrorIs(t, err, ErrNoSource)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), Source{FilePath: filepath.Join(t.TempDir(), "nope.csv")}, nil)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("bad status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := Load(context.Background(), Source{URL: srv.URL}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 404")
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
		}))
		defer srv.Close()

		_, err := Load(context.Background(), Source{URL: srv.URL}, nil)
		assert.ErrorIs(t, err, ErrMissingHeader)
	})

	t.Run("malformed document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		_, err := Load(context.Background(), Source{URL: srv.URL}, nil)
		assert.ErrorIs(t, err, ErrUnrecognizedHeader)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := Load(context.Background(), Source{URL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
		assert.Error(t, err)
	})
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "a.csv", Source{FilePath: "a.csv", URL: "http://x"}.String())
	assert.Equal(t, "http://x", Source{URL: "http://x"}.String())
}
