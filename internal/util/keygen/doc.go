// Package keygen generates RSA key pairs for SSH authentication.
//
// Keys are produced in PEM format (private) and OpenSSH authorized_keys
// format (public), suitable for injecting into a Compute Engine instance's
// ssh-keys metadata entry.
package keygen
