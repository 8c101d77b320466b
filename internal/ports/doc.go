// Package ports declares the driven adapters the use cases depend on.
package ports
