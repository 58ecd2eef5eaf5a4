package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/descriptor"
	"github.com/gkertaseferi/generator-ibm-cloud-enablement/pkg/serializer"
)

// languageInfo is the reported view of a supported language.
type languageInfo struct {
	DisplayName string `json:"displayName" yaml:"displayName"`
	Bucket      string `json:"bucket" yaml:"bucket"`
	Port        int32  `json:"port" yaml:"port"`
}

// supportedLanguages returns the supported languages keyed by identifier.
func supportedLanguages() map[string]languageInfo {
	langs := descriptor.SupportedLanguages()
	out := make(map[string]languageInfo, len(langs))
	for _, l := range langs {
		out[string(l)] = languageInfo{
			DisplayName: l.DisplayName(),
			Bucket:      string(l.Bucket()),
			Port:        l.Port(),
		}
	}
	return out
}

func languagesCmd() *cli.Command {
	return &cli.Command{
		Name:  "languages",
		Usage: "List supported application languages",
		Description: `Lists the languages the generator accepts as backendPlatform, with the
script bucket each one uses and the container port of its chart.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatTable),
				Usage:   "Output format: json, yaml or table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			format := serializer.Format(cmd.String("format"))
			if format.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", format)
			}
			return serializer.NewWriter(format, cmd.Root().Writer).Serialize(ctx, supportedLanguages())
		},
	}
}
