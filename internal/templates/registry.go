package templates

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/samber/lo"

	oerrors "github.com/limgen/cli/internal/errors"
)

// Component is a bundled infrastructure component that 'limgen add' can copy.
type Component struct {
	// Name is the catalog name, e.g. "storage-s3".
	Name string
	// ID is the template identifier, e.g. "components/storage-s3.ts".
	ID          string
	Description string
}

var componentDescriptions = map[string]string{
	"app-azure-acs":   "Container app on Azure Container Apps with ACR",
	"app-fargate":     "Containerized app on ECS Fargate",
	"bastion-ec2":     "SSM-managed bastion host for private networks",
	"cdn-cloudfront":  "CloudFront distribution in front of a load balancer or bucket",
	"db-postgres-rds": "Aurora Postgres cluster with a connection string secret",
	"lb-alb-public":   "Public application load balancer",
	"storage-s3":      "S3 bucket for objects or static sites",
	"vpc-public":      "VPC with public subnets",
}

// Components returns the component catalog sorted by name.
func Components() ([]Component, error) {
	ids, err := List("components")
	if err != nil {
		return nil, err
	}
	comps := lo.Map(ids, func(id string, _ int) Component {
		name := strings.TrimSuffix(path.Base(id), ".ts")
		return Component{Name: name, ID: id, Description: componentDescriptions[name]}
	})
	sort.Slice(comps, func(i, j int) bool { return comps[i].Name < comps[j].Name })
	return comps, nil
}

// LookupComponent finds a component by name, with or without the .ts suffix.
func LookupComponent(name string) (Component, error) {
	comps, err := Components()
	if err != nil {
		return Component{}, err
	}
	name = strings.TrimSuffix(name, ".ts")
	if c, ok := lo.Find(comps, func(c Component) bool { return c.Name == name }); ok {
		return c, nil
	}
	return Component{}, oerrors.NewNotFoundError(
		fmt.Sprintf("unknown component %q", name),
		"",
		"available: "+strings.Join(lo.Map(comps, func(c Component, _ int) string { return c.Name }), ", "),
	)
}
