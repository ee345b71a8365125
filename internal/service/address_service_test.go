package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func addressInput(name string, isDefault bool) AddressInput {
	return AddressInput{
		Name:          strPtr(name),
		RecipientName: strPtr("Somchai"),
		PhoneNumber:   strPtr("0812345678"),
		AddressLine1:  strPtr("58 Moo 9, Km. 42 Paholyothin Highway"),
		City:          strPtr("Khlong Luang"),
		IsDefault:     boolPtr(isDefault),
	}
}

func TestAddressServiceSingleDefault(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "address_service_test")
	svc := NewAddressService(repository.NewAddressRepository(env.db))
	user := env.createUser(t, "resident")

	dorm, err := svc.Create(user.ID, addressInput("Dorm", true))
	if err != nil {
		t.Fatalf("create dorm failed: %v", err)
	}
	if dorm.AddressType != constants.AddressTypeHome || dorm.Country != constants.AddressCountryDefault {
		t.Fatalf("unexpected defaults: type=%s country=%s", dorm.AddressType, dorm.Country)
	}
	office, err := svc.Create(user.ID, addressInput("Office", true))
	if err != nil {
		t.Fatalf("create office failed: %v", err)
	}

	current, err := svc.GetDefault(user.ID)
	if err != nil {
		t.Fatalf("get default failed: %v", err)
	}
	if current.ID != office.ID {
		t.Fatalf("latest default should win, got %d", current.ID)
	}

	if _, err := svc.SetDefault(user.ID, dorm.ID); err != nil {
		t.Fatalf("set default failed: %v", err)
	}
	list, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defaults := 0
	for _, address := range list {
		if address.IsDefault {
			defaults++
			if address.ID != dorm.ID {
				t.Fatalf("wrong default address %d", address.ID)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}
}

func TestAddressServiceValidationAndOwnership(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "address_service_validation_test")
	svc := NewAddressService(repository.NewAddressRepository(env.db))
	owner := env.createUser(t, "owner")
	other := env.createUser(t, "other")

	missingCity := addressInput("Home", false)
	missingCity.City = strPtr("  ")
	if _, err := svc.Create(owner.ID, missingCity); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected invalid address, got %v", err)
	}
	badType := addressInput("Home", false)
	badType.AddressType = strPtr("castle")
	if _, err := svc.Create(owner.ID, badType); !errors.Is(err, ErrAddressInvalid) {
		t.Fatalf("expected invalid type, got %v", err)
	}

	address, err := svc.Create(owner.ID, addressInput("Home", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.GetDefault(owner.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected no default, got %v", err)
	}
	if _, err := svc.Get(other.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("other users must not see the address, got %v", err)
	}
	if err := svc.Delete(other.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("other users must not delete the address, got %v", err)
	}
	updated, err := svc.Update(owner.ID, address.ID, AddressInput{AddressType: strPtr("Work"), PostalCode: strPtr("12120")})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.AddressType != constants.AddressTypeWork || updated.PostalCode != "12120" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if err := svc.Delete(owner.ID, address.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestAddressServiceIgnoresInactiveAddresses(t *testing.T) {
	env := setupMarketplaceServiceTest(t, "address_service_inactive_test")
	svc := NewAddressService(repository.NewAddressRepository(env.db))
	owner := env.createUser(t, "mover")

	address, err := svc.Create(owner.ID, addressInput("Old dorm", false))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := env.db.Model(&models.Address{}).Where("id = ?", address.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	if _, err := svc.Get(owner.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("inactive address should not be found, got %v", err)
	}
	if _, err := svc.SetDefault(owner.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("inactive address cannot become default, got %v", err)
	}
	if _, err := svc.Update(owner.ID, address.ID, AddressInput{City: strPtr("Pathum Thani")}); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("inactive address should not be editable, got %v", err)
	}
	if err := svc.Delete(owner.ID, address.ID); !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("inactive address should not be deletable, got %v", err)
	}
}
