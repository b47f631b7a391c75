package main

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotaBody = `{"error":true,"reason":"Daily API request limit exceeded. Please try again tomorrow."}`

// archiveServer answers like the archive endpoint. Rain equals the requested
// latitude plus one, Vigo is rejected with the quota error.
func archiveServer(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var latitudes []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lat := r.URL.Query().Get("latitude")
		mu.Lock()
		latitudes = append(latitudes, lat)
		mu.Unlock()

		if lat == "42.2406" {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(quotaBody))
			return
		}

		rain, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fmt.Fprintf(w, `{"daily":{"time":["2023-01-01","2023-01-02"],"precipitation_sum":[%g,1],"temperature_2m_max":[20,22],"temperature_2m_min":[10,12]}}`, rain)
	}))
	t.Cleanup(srv.Close)

	return srv, func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), latitudes...)
	}
}

func executeReport(t *testing.T, archiveURL, input string, env map[string]string) string {
	t.Helper()

	for _, k := range []string{"HTTP_TIMEOUT", "HTTP_MAX_RETRIES", "AVERAGE_POLICY", "REPORT_SCHEDULE", "PORT", "VERBOSE"} {
		t.Setenv(k, env[k])
	}
	t.Setenv("OPEN_METEO_ARCHIVE_URL", archiveURL)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestReportFixedLocations(t *testing.T) {
	srv, requested := archiveServer(t)

	out := executeReport(t, srv.URL, "n\n", nil)

	assert.True(t, strings.HasPrefix(out, "¿Quieres introducir coordenadas manualmente? (s/n): "))
	assert.Equal(t, []string{"42.8805", "43.3623", "42.2406", "43.0125", "42.3409"}, requested())

	failure := "Error en la respuesta de la API para (42.2406, -8.7207): " + quotaBody + "\n"
	assert.Contains(t, out, failure)
	assert.Contains(t, out, "A Coruña\n- Lluvia total: 44.36 mm\n- Temp. media: 16.00°C\n- Día más caluroso: 22.00°C\n- Día más frío: 10.00°C\n")
	assert.NotContains(t, out, "Vigo\n")

	// Diagnostics are printed while fetching, before any location block.
	assert.Less(t, strings.Index(out, failure), strings.Index(out, "Santiago de Compostela\n"))
	assert.True(t, strings.HasSuffix(out, "\n**Resumen Final**:\n"+
		"Lugar más lluvioso: A Coruña con 44.36 mm de lluvia.\n"+
		"Lugar más caluroso: Santiago de Compostela con temperatura media de 16.00°C.\n"))
}

func TestReportInvalidManualCoordinates(t *testing.T) {
	srv, requested := archiveServer(t)

	out := executeReport(t, srv.URL, "s\nabc\n1\n", nil)

	assert.Contains(t, out, "Introduce la latitud: Introduce la longitud: ")
	assert.Contains(t, out, "Coordenadas inválidas. Se usará Santiago de Compostela.\n")
	assert.Equal(t, []string{"42.8805"}, requested())
	assert.Contains(t, out, "Lugar más lluvioso: Santiago de Compostela con 43.88 mm de lluvia.\n")
}

func TestReportIgnoresWatchAndServeKeys(t *testing.T) {
	srv, _ := archiveServer(t)

	out := executeReport(t, srv.URL, "n\n", map[string]string{
		"REPORT_SCHEDULE": "every tuesday",
		"PORT":            "http",
	})
	assert.Contains(t, out, "**Resumen Final**")
}
