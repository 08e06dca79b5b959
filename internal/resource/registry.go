// AngelaMos | 2026
// registry.go

package resource

import (
	"fmt"

	"github.com/carterperez-dev/tourops-backend/internal/rbac"
)

type Ops uint8

const (
	OpList Ops = 1 << iota
	OpGet
	OpCreate
	OpUpdate
	OpDelete
)

const (
	OpsAll      = OpList | OpGet | OpCreate | OpUpdate | OpDelete
	OpsReadOnly = OpList | OpGet
	OpsListOnly = OpList
)

// Resource is one registered table. Table and column names are compile-time
// constants from this registry and never come from request input; request
// values only ever travel through query parameters.
type Resource struct {
	// Name is the URL path segment, Table the backing table.
	Name   string
	Table  string
	Module string

	// Scoped is deliberately explicit on every entry: a mis-flagged
	// resource is a tenant-isolation hole.
	Scoped bool

	// SoftDelete is false only for append-only log tables that carry no
	// deleted_at column.
	SoftDelete bool

	SuperAdminOnly bool

	Ops Ops

	// Columns is the writable allowlist. id, operator_id and timestamps
	// are engine-managed and never writable through the generic path.
	Columns []string

	OrderBy   string
	ListLimit int

	writable map[string]struct{}
}

func (r *Resource) Allows(op Ops) bool {
	return r.Ops&op != 0
}

func (r *Resource) IsWritable(column string) bool {
	_, ok := r.writable[column]
	return ok
}

var registry []Resource

func init() {
	registry = buildRegistry()

	seen := make(map[string]struct{}, len(registry))
	for i := range registry {
		res := &registry[i]
		if _, dup := seen[res.Name]; dup {
			panic(fmt.Sprintf("resource: duplicate registration %q", res.Name))
		}
		seen[res.Name] = struct{}{}

		if res.OrderBy == "" {
			res.OrderBy = "id DESC"
		}

		res.writable = make(map[string]struct{}, len(res.Columns))
		for _, c := range res.Columns {
			res.writable[c] = struct{}{}
		}
	}
}

// Registry returns the fixed resource set. Callers must not mutate entries.
func Registry() []Resource {
	return registry
}

func Lookup(name string) (*Resource, bool) {
	for i := range registry {
		if registry[i].Name == name {
			return &registry[i], true
		}
	}
	return nil, false
}

//nolint:funlen // the registry is one long literal by design
func buildRegistry() []Resource {
	return []Resource{
		{
			Name: "clients", Table: "clients",
			Module: rbac.ModuleClients, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"full_name", "email", "phone", "nationality",
				"passport_number", "passport_expiry", "date_of_birth", "notes",
			},
		},
		{
			Name: "suppliers", Table: "suppliers",
			Module: rbac.ModuleServices, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "supplier_type", "contact_name", "contact_email",
				"contact_phone", "address", "payment_terms", "notes",
			},
		},
		{
			Name: "hotels", Table: "hotels",
			Module: rbac.ModuleServices, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "city", "country", "star_rating", "address",
				"contact_email", "contact_phone", "base_rate", "currency",
			},
		},
		{
			Name: "vehicles", Table: "vehicles",
			Module: rbac.ModuleServices, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"vehicle_type", "model", "registration_number", "capacity",
				"driver_name", "driver_phone", "daily_rate", "currency",
			},
		},
		{
			Name: "tours", Table: "tours",
			Module: rbac.ModuleServices, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "description", "destination", "duration_days",
				"price_per_person", "currency", "max_group_size",
			},
		},
		{
			Name: "bookings", Table: "bookings",
			Module: rbac.ModuleBookings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_reference", "client_id", "status", "travel_start",
				"travel_end", "destination", "pax_count", "total_amount",
				"currency", "notes",
			},
		},
		{
			Name: "booking-services", Table: "booking_services",
			Module: rbac.ModuleBookings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "service_type", "service_id", "service_date",
				"quantity", "unit_price", "markup_percent", "notes",
			},
		},
		{
			Name: "booking-flights", Table: "booking_flights",
			Module: rbac.ModuleBookings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "airline", "flight_number", "departure_airport",
				"arrival_airport", "departure_time", "arrival_time", "pnr",
			},
		},
		{
			Name: "booking-tasks", Table: "booking_tasks",
			Module: rbac.ModuleBookings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "title", "description", "due_date", "status",
				"assigned_to",
			},
		},
		{
			Name: "quotations", Table: "quotations",
			Module: rbac.ModuleBookings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"quotation_reference", "client_id", "status", "valid_until",
				"destination", "pax_count", "total_amount", "currency", "notes",
			},
		},
		{
			Name: "bank-accounts", Table: "bank_accounts",
			Module: rbac.ModulePayments, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"account_name", "bank_name", "account_number", "iban",
				"swift_code", "currency", "is_default",
			},
		},
		{
			Name: "client-payments", Table: "client_payments",
			Module: rbac.ModulePayments, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "client_id", "amount", "currency",
				"payment_method", "payment_date", "reference", "notes",
			},
		},
		{
			Name: "supplier-payments", Table: "supplier_payments",
			Module: rbac.ModulePayments, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"supplier_id", "booking_id", "amount", "currency",
				"payment_method", "payment_date", "reference", "notes",
			},
		},
		{
			Name: "refunds", Table: "refunds",
			Module: rbac.ModulePayments, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "client_id", "amount", "currency", "reason",
				"refund_date", "status",
			},
		},
		{
			Name: "commissions", Table: "commissions",
			Module: rbac.ModulePayments, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "agent_name", "amount", "currency", "rate_percent",
				"status", "paid_date",
			},
		},
		{
			Name: "pickup-locations", Table: "pickup_locations",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "address", "city", "latitude", "longitude", "notes",
			},
		},
		{
			Name: "cancellation-policies", Table: "cancellation_policies",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "description", "days_before", "penalty_percent",
			},
		},
		{
			Name: "staff-schedule", Table: "staff_schedule",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"user_id", "shift_date", "shift_start", "shift_end", "role",
				"notes",
			},
		},
		{
			Name: "travel-insurance", Table: "travel_insurance",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "client_id", "provider", "policy_number",
				"coverage_amount", "currency", "valid_from", "valid_until",
			},
		},
		{
			Name: "vouchers", Table: "vouchers",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "voucher_number", "service_type", "issue_date",
				"status", "notes",
			},
		},
		{
			Name: "documents", Table: "documents",
			Module: rbac.ModuleOperations, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"booking_id", "client_id", "document_type", "file_name",
				"file_path", "notes",
			},
		},
		{
			Name: "email-templates", Table: "email_templates",
			Module: rbac.ModuleSettings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "subject", "body", "template_type", "is_active",
			},
		},
		{
			Name: "document-templates", Table: "document_templates",
			Module: rbac.ModuleSettings, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"name", "description", "template_type", "content", "is_active",
			},
		},
		{
			Name: "notifications", Table: "notifications",
			Module: rbac.ModuleDashboard, Scoped: true, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"user_id", "title", "message", "notification_type", "entity_id",
			},
		},
		{
			// Shared reference data: every tenant reads the same rows.
			Name: "visa-requirements", Table: "visa_requirements",
			Module: rbac.ModuleOperations, Scoped: false, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"nationality", "destination_country", "visa_type",
				"requirements", "processing_days", "fee", "currency",
			},
		},
		{
			Name: "passenger-visas", Table: "passenger_visas",
			Module: rbac.ModuleOperations, Scoped: false, SoftDelete: true,
			Ops: OpsAll,
			Columns: []string{
				"client_id", "destination_country", "visa_type", "status",
				"application_date", "issue_date", "expiry_date",
			},
		},
		{
			// The tenant table itself; platform administration only.
			Name: "operators", Table: "operators",
			Module: rbac.ModuleSettings, Scoped: false, SoftDelete: true,
			SuperAdminOnly: true,
			Ops:            OpsAll,
			Columns: []string{
				"company_name", "contact_email", "contact_phone", "address",
				"is_active",
			},
		},
		{
			// Append-only audit trail: reads only, capped and newest-first.
			Name: "audit-logs", Table: "audit_logs",
			Module: rbac.ModuleReports, Scoped: true, SoftDelete: false,
			Ops:       OpsListOnly,
			OrderBy:   "created_at DESC",
			ListLimit: 100,
		},
		{
			Name: "email-logs", Table: "email_logs",
			Module: rbac.ModuleReports, Scoped: true, SoftDelete: false,
			Ops:       OpsListOnly,
			OrderBy:   "created_at DESC",
			ListLimit: 100,
		},
	}
}
