// File: internal/formatter/deploy_formatter.go
package formatter

import (
	"fmt"
	"strings"

	"sitedeploy/internal/service"
)

type DeployFormatter struct{}

func NewDeployFormatter() *DeployFormatter {
	return &DeployFormatter{}
}

// Summarises a successful deploy: both containers with their website role, then
// every object written in upload order
func (f *DeployFormatter) FormatResult(result service.DeployResult) string {
	var sb strings.Builder

	sb.WriteString(FormatHeaderSection(fmt.Sprintf("Deployed %s (%s)", result.Base.Name, result.Provider.DisplayName())))
	sb.WriteString("\n\n")

	sb.WriteString(FormatSectionTitle("Containers"))
	sb.WriteString("\n")
	containers := NewTable([]string{"CONTAINER", "WEBSITE", "STATUS"})
	for _, c := range []service.ContainerResult{result.Base, result.WWW} {
		containers.AddRow([]string{c.Name, c.Website.String(), containerStatus(c.Created)})
	}
	sb.WriteString(containers.String())
	sb.WriteString("\n\n")

	sb.WriteString(FormatSectionTitle("Objects"))
	sb.WriteString("\n")
	if len(result.Objects) == 0 {
		sb.WriteString(fmt.Sprintf("No files found under %s, nothing uploaded", result.BuildDir))
		return sb.String()
	}

	objects := NewTable([]string{"#", "OBJECT"})
	for i, name := range result.Objects {
		objects.AddRow([]string{fmt.Sprintf("%d", i+1), name})
	}
	sb.WriteString(objects.String())
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%d object(s) uploaded to %s", len(result.Objects), result.Base.Name))

	return sb.String()
}

func containerStatus(created bool) string {
	if created {
		return "created"
	}
	return "existing"
}
