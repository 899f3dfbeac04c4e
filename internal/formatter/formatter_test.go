package formatter_test

import (
	"strings"
	"testing"

	"sitedeploy/internal/formatter"
	"sitedeploy/internal/service"
	"sitedeploy/pkg/common"
	"sitedeploy/pkg/storage"

	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	table := formatter.NewTable([]string{"NAME", "SIZE"})
	table.AddRow([]string{"index.html", "11 B"})
	table.AddRow([]string{"a.css"})

	want := strings.Join([]string{
		"+------------+------+",
		"| NAME       | SIZE | ",
		"+------------+------+",
		"| index.html | 11 B | ",
		"| a.css      |      | ",
		"+------------+------+",
	}, "\n")
	require.Equal(t, want, table.String())
}

func TestTable_NoHeaders(t *testing.T) {
	require.Empty(t, formatter.NewTable(nil).String())
}

func result(objects ...string) service.DeployResult {
	return service.DeployResult{
		Provider: common.AWS,
		Domain:   "example",
		BuildDir: "src",
		Base:     service.ContainerResult{Name: "example.com", Created: true},
		WWW: service.ContainerResult{
			Name:    "www.example.com",
			Website: storage.WebsiteConfiguration{RedirectAllRequestsTo: &storage.RedirectAllRequestsTo{HostName: "example.com"}},
		},
		Objects: objects,
	}
}

func TestFormatResult(t *testing.T) {
	out := formatter.NewDeployFormatter().FormatResult(result("index.html", "app.js"))

	require.Contains(t, out, "Deployed example.com (AWS S3)")
	require.Contains(t, out, "| example.com     | serve index.html        | created  |")
	require.Contains(t, out, "| www.example.com | redirect to example.com | existing |")
	require.Contains(t, out, "| 1 | index.html |")
	require.Contains(t, out, "| 2 | app.js     |")
	require.Contains(t, out, "2 object(s) uploaded to example.com")
}

func TestFormatResult_NoObjects(t *testing.T) {
	out := formatter.NewDeployFormatter().FormatResult(result())
	require.Contains(t, out, "No files found under src, nothing uploaded")
}
