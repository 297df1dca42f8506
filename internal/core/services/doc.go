// Package services implements the driving port interfaces.
// Services contain the curation rules and orchestrate
// calls to driven ports (adapters).
//
// Services never read configuration from the environment; everything they
// need is passed to their constructors.
package services
