package paths

import (
	"flag"
)

// ResourcesDir is the shortname of the directory holding resource
// categories, such as "walkabouts".
const ResourcesDir = "resources"

// SetupFilePathFlag creates a new string flag with the passed name with a sane
// default for the path to the file, if found using the Find function. If not,
// the flag defaults to an empty string.
func SetupFilePathFlag(fileName, flagName string, flagPtr *string) {
	flag.StringVar(flagPtr, flagName, Find(fileName), "Path to "+fileName)
}

// SetupResourcesRootFlag registers --resources_path.
func SetupResourcesRootFlag(flagPtr *string) {
	SetupFilePathFlag(ResourcesDir, "resources_path", flagPtr)
}
