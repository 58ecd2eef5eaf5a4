// Package generator produces the deployment artifacts of an application.
//
// # Overview
//
// DefaultGenerator turns an ApplicationDescriptor into the files a delivery
// toolchain needs to build and deploy it:
//
//	.bluemix/toolchain.yml
//	.bluemix/pipeline.yml
//	.bluemix/deploy.json
//	.bluemix/container_build.sh
//	.bluemix/kube_deploy.sh
//	chart/<chart-name>/Chart.yaml
//	chart/<chart-name>/values.yaml
//	chart/<chart-name>/templates/{deployment,service,hpa}.yaml
//
// # Flow
//
//  1. Select the artifact set of the descriptor's deployment target.
//  2. Build the parameter set from the descriptor and the Config.
//  3. Render every artifact in memory, in parallel.
//  4. Check the output directory for conflicts.
//  5. Write the files in emission order, then checksums.txt if enabled.
//
// Any failure in steps 1 to 4 returns before a single file is written.
//
// # Usage
//
//	g, err := generator.New(generator.WithConfig(config.NewConfig(
//	    config.WithIncludeChecksums(true),
//	)))
//	if err != nil {
//	    return err
//	}
//	out, err := g.Make(ctx, desc, "./acme")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(out.Summary())
//
// Thread-safety: DefaultGenerator holds no per-run state and is safe for
// concurrent use.
package generator
