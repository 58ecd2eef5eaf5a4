// Package oci publishes generated enablement projects to OCI-compliant registries.
//
// A generated project directory is packed into a single gzipped tar layer
// under an OCI 1.1 manifest with the artifact type
// "application/vnd.ibm.enablement.project", so registries and tools can tell
// it apart from runnable images. Packing and pushing are separate steps:
//
//	pkg, err := oci.Package(ctx, oci.PackageOptions{
//	    SourceDir:  "/tmp/acme",
//	    OutputDir:  "/tmp/acme-oci",
//	    Registry:   "us.icr.io",
//	    Repository: "acme/enablement",
//	    Tag:        "v1.0.0",
//	})
//	if err != nil {
//	    return err
//	}
//	res, err := oci.PushFromStore(ctx, pkg.StorePath, oci.PushOptions{
//	    Registry:   "us.icr.io",
//	    Repository: "acme/enablement",
//	    Tag:        "v1.0.0",
//	})
//
// PackageAndPush combines both for the CLI "--output oci://..." form.
//
// Credentials are read from the Docker configuration (~/.docker/config.json)
// through the ORAS credentials package. PlainHTTP and InsecureTLS exist for
// local development registries.
package oci
