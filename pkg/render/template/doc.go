// Package template defines the template engine contract used by the fragment
// renderers. The pongo subpackage provides the Django-syntax implementation.
package template
