package project

import (
	oerrors "github.com/limgen/cli/internal/errors"
)

// Contribution is a set of files and packages added to a manifest.
type Contribution struct {
	Files    []string
	Packages []string
}

// FlagRule adds a contribution when a tri-state input is On.
type FlagRule struct {
	Input string
	Adds  Contribution
}

// SelectorRule picks one contribution by the value of an enum input.
// Choices holds an entry for every valid value, possibly empty.
type SelectorRule struct {
	Input   string
	Choices map[string]Contribution
}

// EnvVar is a value env-pull writes into .env.
type EnvVar struct {
	// Name is the variable name in .env.
	Name string
	// Output is the Pulumi stack output to read.
	Output string
	// Secret means Output holds a Secrets Manager ARN whose value is the variable.
	Secret bool
}

// Definition is everything limgen knows about one project type.
type Definition struct {
	Type        Type
	Description string

	BaseFiles    []string
	BasePackages []string

	// Flags are applied before Selectors; each list in declaration order.
	Flags     []FlagRule
	Selectors []SelectorRule

	Inputs []InputDef

	// IndexTemplate renders projects/<name>/index.ts.
	IndexTemplate string

	// PulumiTemplate is recorded in the Pulumi project tags.
	PulumiTemplate string

	// Env lists env-pull variables for opts; nil means env-pull is unsupported.
	Env func(Options) []EnvVar
}

// Input returns the declared input with the given name.
func (d *Definition) Input(name string) (InputDef, bool) {
	for _, in := range d.Inputs {
		if in.Name == name {
			return in, true
		}
	}
	return InputDef{}, false
}

// Declares reports whether the type accepts the named input.
func (d *Definition) Declares(name string) bool {
	_, ok := d.Input(name)
	return ok
}

var awsBasePackages = []string{"@pulumi/aws", "@pulumi/awsx", "@pulumi/pulumi", "zod"}

var portInput = InputDef{
	Name:    InputPort,
	Kind:    KindInt,
	Prompt:  "Port to expose",
	Default: "3000",
}

var registry = map[Type]*Definition{
	FullstackAWS: {
		Type:        FullstackAWS,
		Description: "Containerized app on ECS Fargate behind an ALB and CloudFront",
		BaseFiles: []string{
			"components/app-fargate.ts",
			"components/cdn-cloudfront.ts",
			"components/lb-alb-public.ts",
			"components/vpc-public.ts",
			"utils/deep-merge.ts",
			"utils/prefixed.ts",
		},
		BasePackages: awsBasePackages,
		Flags: []FlagRule{
			{Input: InputIncludeStorage, Adds: Contribution{Files: []string{"components/storage-s3.ts"}}},
			{Input: InputIncludeDB, Adds: Contribution{
				Files:    []string{"components/db-postgres-rds.ts"},
				Packages: []string{"@pulumi/random"},
			}},
		},
		Selectors: []SelectorRule{
			{Input: InputNetworkType, Choices: map[string]Contribution{
				string(NetworkPublic):  {},
				string(NetworkPrivate): {Files: []string{"components/bastion-ec2.ts"}},
			}},
		},
		Inputs: []InputDef{
			{Name: InputIncludeStorage, Kind: KindFlag, Prompt: "Include storage?"},
			{
				Name:    InputStorageAccess,
				Kind:    KindEnum,
				Prompt:  "Storage access",
				Choices: []string{string(StorageAccessPublic), string(StorageAccessPrivate)},
				When:    func(o Options) bool { return o.IncludeStorage == On },
			},
			{Name: InputIncludeDB, Kind: KindFlag, Prompt: "Include a database?"},
			{
				Name:    InputNetworkType,
				Kind:    KindEnum,
				Prompt:  "Network type",
				Choices: []string{string(NetworkPublic), string(NetworkPrivate)},
			},
			portInput,
		},
		IndexTemplate:  "index/fullstack-aws.ts.tmpl",
		PulumiTemplate: "aws-typescript",
		Env: func(o Options) []EnvVar {
			var vars []EnvVar
			if o.IncludeStorage == On {
				vars = append(vars, EnvVar{Name: "BUCKET_NAME", Output: "objectStorageBucket"})
			}
			if o.IncludeDB == On {
				vars = append(vars, EnvVar{Name: "DATABASE_URL", Output: "dbSecret", Secret: true})
			}
			return vars
		},
	},
	StaticsiteAWS: {
		Type:        StaticsiteAWS,
		Description: "Static site in S3 served through CloudFront",
		BaseFiles: []string{
			"components/storage-s3.ts",
			"components/cdn-cloudfront.ts",
			"utils/deep-merge.ts",
			"utils/prefixed.ts",
		},
		BasePackages: awsBasePackages,
		Inputs: []InputDef{
			{Name: InputOutputDir, Kind: KindString, Prompt: "Build output directory", Default: "out"},
		},
		IndexTemplate:  "index/staticsite-aws.ts.tmpl",
		PulumiTemplate: "aws-typescript",
	},
	FullstackAzure: {
		Type:        FullstackAzure,
		Description: "Containerized app on Azure Container Apps",
		BaseFiles: []string{
			"components/app-azure-acs.ts",
			"utils/prefixed.ts",
		},
		BasePackages:   []string{"@pulumi/azure-native", "@pulumi/pulumi", "@pulumi/docker", "@pulumi/docker-build"},
		Inputs:         []InputDef{portInput},
		IndexTemplate:  "index/fullstack-azure.ts.tmpl",
		PulumiTemplate: "azure-typescript",
	},
}

// Lookup returns the definition for t.
func Lookup(t Type) (*Definition, error) {
	def, ok := registry[t]
	if !ok {
		return nil, &oerrors.UnsupportedConfigurationError{Field: "projectType", Value: string(t)}
	}
	return def, nil
}

// Definitions returns all definitions in display order.
func Definitions() []*Definition {
	defs := make([]*Definition, 0, len(registry))
	for _, t := range Types() {
		defs = append(defs, registry[t])
	}
	return defs
}
