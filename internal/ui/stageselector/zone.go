package stageselector

import "github.com/zjrosen/dealboard/internal/pipeline"

// Zone ID format: stage:{name}, e.g. stage:quoting.
const zoneStagePrefix = "stage:"

// ZoneID returns the bubblezone ID of the button for s.
func ZoneID(s pipeline.Stage) string {
	return zoneStagePrefix + s.String()
}
