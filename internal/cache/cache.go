// Package cache provides the namespaced read-through cache shared by the
// lookup and listing services. Eviction is coarse: a whole namespace at a
// time. A TTL may be configured as a safety net, but correctness relies on
// the explicit evictions performed by the appointment write paths.
package cache

import "context"

// Logical namespaces. Entity caches are read-through for the life of the
// process; the page caches are evicted by appointment writes.
const (
	NamespaceCustomer               = "customer"
	NamespaceDoctor                 = "doctor"
	NamespaceDoctorTimeDetails      = "doctorTimeDetails"
	NamespaceCustomersPage          = "customersPage"
	NamespaceDoctorsPage            = "doctorsPage"
	NamespaceDoctorAppointmentsPage = "doctorAppointmentsPage"
)

type Cache interface {
	// Get unmarshals the cached value for (namespace, key) into dest and
	// reports whether an entry was found.
	Get(ctx context.Context, namespace, key string, dest any) (bool, error)

	// Set stores the value under (namespace, key).
	Set(ctx context.Context, namespace, key string, value any) error

	// EvictAll drops every entry in the namespace.
	EvictAll(ctx context.Context, namespace string) error
}
