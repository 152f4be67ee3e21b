package modular

import "github.com/shuldan/modular/pkg/errors"

var newModularCode = errors.WithPrefix("MODULAR")

var (
	ErrManagerExists       = newModularCode().New("a module manager already exists in this process")
	ErrManagerSealed       = newModularCode().New("module manager is sealed, cannot register {{.module}}")
	ErrManagerReleased     = newModularCode().New("module manager has been released")
	ErrNilModule           = newModularCode().New("constructor of {{.module}} returned nil")
	ErrAliasMismatch       = newModularCode().New("module {{.module}} does not implement {{.alias}}")
	ErrModuleNotFound      = newModularCode().New("module {{.type}} is not registered")
	ErrDependencyMissing   = newModularCode().New("module {{.module}} requires {{.dependency}}, which is not registered")
	ErrDependencyMismatch  = newModularCode().New("module {{.module}} requires {{.dependency}}, but the registered {{.actual}} does not satisfy it")
	ErrValidationFailed    = newModularCode().New("module validation failed: {{.errors}}")
	ErrModuleInit          = newModularCode().New("module {{.module}} failed to initialize")
	ErrModuleStart         = newModularCode().New("module {{.module}} failed to start")
	ErrPackInit            = newModularCode().New("pack {{.pack}} failed to initialize")
	ErrBuilderReused       = newModularCode().New("builder has already been used")
	ErrItemBound           = newModularCode().New("item {{.item}} was already created by a manager")
	ErrItemInit            = newModularCode().New("item {{.item}} failed to initialize")
	ErrUnknownModuleName   = newModularCode().New("unknown module {{.name}} in pack {{.pack}}")
	ErrDuplicateModuleName = newModularCode().New("module name {{.name}} is already in the catalog")
	ErrInvalidPack         = newModularCode().New("invalid pack definition at {{.key}}[{{.index}}]: {{.reason}}")
)
