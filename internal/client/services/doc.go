// Package services contains the application services behind the interactive
// client: authentication and password recovery, inventory views and product
// maintenance, and user administration.
package services
