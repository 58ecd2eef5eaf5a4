// Package descriptor defines the application description that drives
// artifact generation: the application name, its language/runtime and the
// deployment target.
//
// Descriptors are usually decoded from an options document, the JSON form
// the toolchain UI hands to the generator:
//
//	{
//	  "name": "AcmeProject",
//	  "backendPlatform": "NODE",
//	  "server": {"name": "MyApplication", "cloudDeploymentType": "Kube"}
//	}
//
// Languages are grouped into buckets. JAVA and SPRING share the java bucket
// and every other supported language uses the default bucket. Template
// selection keys on the bucket, never on individual languages.
package descriptor
