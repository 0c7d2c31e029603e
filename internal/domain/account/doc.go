// Package account contains the customer-owned sibling sets: saved addresses
// and payment methods. Each owner may flag at most one member of each set as default.
package account
