package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/simforge/fea-sim/pkg/contract"
	"github.com/simforge/fea-sim/pkg/dispatch"
)

// ComposeDocument prompts for every parameter in a routine's schema and
// assembles a raw wire document for the given test type. The result is NOT
// validated; callers pass it to contract.Validate like any other input.
//
// Set FEA_SIM_SKIP_PROMPTS=true to run non-interactively: values come from
// FEA_SIM_<GROUP>_<KEY> environment variables, falling back to schema
// defaults.
func ComposeDocument(testType string, params []dispatch.Parameter) (map[string]interface{}, error) {
	doc := map[string]interface{}{
		contract.KeyTestType: testType,
	}

	skipPrompts := os.Getenv("FEA_SIM_SKIP_PROMPTS") == "true"

	// Reference constants for the selected material seed later prompts in
	// the MATERIAL group.
	var selectedMaterial string

	for _, param := range params {
		def := param.Default
		if param.Group == contract.GroupMaterial && selectedMaterial != "" {
			if props, ok := contract.LookupMaterial(selectedMaterial); ok {
				switch param.Key {
				case "youngs_modulus_Pa":
					def = props.YoungsModulusPa
				case "poisson_ratio":
					def = props.PoissonRatio
				}
			}
		}

		value, err := resolveParameter(param, def, skipPrompts)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s.%s: %w", param.Group, param.Key, err)
		}

		if param.Type == "material" {
			selectedMaterial, _ = value.(string)
		}

		group, ok := doc[param.Group].(map[string]interface{})
		if !ok {
			group = make(map[string]interface{})
			doc[param.Group] = group
		}
		group[param.Key] = value
	}

	return doc, nil
}

func resolveParameter(param dispatch.Parameter, def interface{}, skipPrompts bool) (interface{}, error) {
	envKey := "FEA_SIM_" + strings.ToUpper(param.Group) + "_" + strings.ToUpper(param.Key)
	if envValue := os.Getenv(envKey); envValue != "" {
		return parseEnvValue(envValue, param)
	}

	if skipPrompts {
		if def != nil {
			return def, nil
		}
		return nil, fmt.Errorf("parameter not provided and no default available (set %s)", envKey)
	}

	switch param.Type {
	case "float":
		return promptFloat(param, def)
	case "material":
		return promptChoice(param, contract.KnownMaterials(), def)
	case "solver":
		return promptChoice(param, []string{string(contract.SolverExplicit), string(contract.SolverImplicit)}, def)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

func parseEnvValue(value string, param dispatch.Parameter) (interface{}, error) {
	switch param.Type {
	case "float":
		return strconv.ParseFloat(value, 64)
	case "material", "solver":
		return value, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

func promptFloat(param dispatch.Parameter, def interface{}) (float64, error) {
	defaultStr := ""
	if def != nil {
		defaultStr = fmt.Sprintf("%v", def)
	}

	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultStr,
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, nil
}

func promptChoice(param dispatch.Parameter, options []string, def interface{}) (string, error) {
	defaultStr := ""
	if def != nil {
		defaultStr = fmt.Sprintf("%v", def)
	}

	prompt := &survey.Select{
		Message: param.Description,
		Options: options,
		Default: defaultStr,
	}
	if defaultStr == "" {
		prompt.Default = nil
	}

	var result string
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}
