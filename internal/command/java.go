package command

// Java builds the Command that launches a Java main class from a single
// classpath jar, handing it the settings file path as its only program
// argument. The argument order is fixed:
//
//	[javaExecutable, jvmArg..., "-cp", jarPath, mainClass, settingsPath]
//
// No I/O happens here; the builder is deterministic for deterministic inputs.
func Java(javaExecutable string, jvmArgs []string, jarPath, mainClass, settingsPath string, env map[string]string) Command {
	args := make([]string, 0, len(jvmArgs)+4)
	args = append(args, jvmArgs...)
	args = append(args, "-cp", jarPath, mainClass, settingsPath)
	return New(javaExecutable, args, env)
}
