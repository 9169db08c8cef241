// Package quantumhabit carries module-level metadata.
package quantumhabit

// Version is the quantumhabit release version.
const Version = "v0.1.0"
