package mscz

import "testing"

func TestConvertReportsMissingTool(t *testing.T) {
	c := Converter{Tool: "satbsplit-nonexistent-notation-tool"}
	_, _, err := c.Convert("input.mscz")
	if err == nil {
		t.Fatalf("expected an error when the configured tool does not exist")
	}
}

func TestConverterZeroValueHasEmptyTool(t *testing.T) {
	c := Converter{}
	if c.Tool != "" {
		t.Fatalf("expected zero value Tool field before Convert resolves the default")
	}
}
