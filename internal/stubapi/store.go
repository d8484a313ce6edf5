package stubapi

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dungnt9/bus-reservation-client/internal/domain"
	"github.com/dungnt9/bus-reservation-client/pkg/util"
)

type userRecord struct {
	User         domain.User
	PasswordHash string
	Active       bool
}

type pendingPhoneChange struct {
	NewPhone string
	OTP      string
}

// Store holds the stub's data set in memory. All access goes through the
// mutex; the stub trades realism for hermetic tests.
type Store struct {
	mu           sync.Mutex
	usersByPhone map[string]*userRecord
	usersByID    map[string]*userRecord
	customers    map[string]*domain.Customer
	trips        map[string]*domain.Trip
	seats        map[string][]*domain.Seat
	invoices     []*domain.Invoice
	otps         map[string]string
	verified     map[string]bool
	phoneChanges map[string]pendingPhoneChange
	bcryptCost   int
}

// NewStore builds an empty store.
func NewStore(bcryptCost int) *Store {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Store{
		usersByPhone: make(map[string]*userRecord),
		usersByID:    make(map[string]*userRecord),
		customers:    make(map[string]*domain.Customer),
		trips:        make(map[string]*domain.Trip),
		seats:        make(map[string][]*domain.Seat),
		otps:         make(map[string]string),
		verified:     make(map[string]bool),
		phoneChanges: make(map[string]pendingPhoneChange),
		bcryptCost:   bcryptCost,
	}
}

// Seed loads the demo accounts and trips.
func (s *Store) Seed() error {
	users := []struct {
		user     domain.User
		password string
	}{
		{
			user: domain.User{
				UserID:      "U-001",
				FullName:    "Tran Thi Khach",
				PhoneNumber: "0900000001",
				Email:       "khach@example.com",
				UserRole:    domain.RoleCustomer,
				CustomerID:  "CUS-001",
			},
			password: "password123",
		},
		{
			user: domain.User{
				UserID:      "U-002",
				FullName:    "Nguyen Van Tai",
				PhoneNumber: "0900000002",
				UserRole:    domain.RoleDriver,
			},
			password: "password123",
		},
		{
			user: domain.User{
				UserID:      "U-003",
				FullName:    "Le Van Phu",
				PhoneNumber: "0900000003",
				UserRole:    domain.RoleAssistant,
			},
			password: "password123",
		},
	}

	for _, seed := range users {
		if err := s.addUser(seed.user, seed.password); err != nil {
			return err
		}
	}

	tomorrow := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	trips := []domain.Trip{
		{
			TripID:        "T-001",
			RouteName:     "Ha Noi - Hai Phong Express",
			Origin:        "Ha Noi",
			Destination:   "Hai Phong",
			DepartureTime: tomorrow,
			ArrivalTime:   tomorrow.Add(2 * time.Hour),
			Price:         120000,
			VehiclePlate:  "29B-123.45",
			Status:        domain.TripStatusScheduled,
			DriverID:      "U-002",
			AssistantID:   "U-003",
		},
		{
			TripID:        "T-002",
			RouteName:     "Ha Noi - Ninh Binh",
			Origin:        "Ha Noi",
			Destination:   "Ninh Binh",
			DepartureTime: tomorrow.Add(3 * time.Hour),
			ArrivalTime:   tomorrow.Add(5 * time.Hour),
			Price:         95000,
			VehiclePlate:  "29B-678.90",
			Status:        domain.TripStatusScheduled,
			DriverID:      "U-002",
		},
		{
			TripID:        "T-003",
			RouteName:     "Da Nang - Hue",
			Origin:        "Da Nang",
			Destination:   "Hue",
			DepartureTime: tomorrow.Add(6 * time.Hour),
			ArrivalTime:   tomorrow.Add(9 * time.Hour),
			Price:         150000,
			VehiclePlate:  "43B-222.33",
			Status:        domain.TripStatusScheduled,
			AssistantID:   "U-003",
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range trips {
		trip := trips[i]
		s.trips[trip.TripID] = &trip
		s.seats[trip.TripID] = buildSeats(trip.TripID)
	}
	return nil
}

func (s *Store) addUser(user domain.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}
	rec := &userRecord{User: user, PasswordHash: string(hash), Active: true}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByPhone[user.PhoneNumber] = rec
	s.usersByID[user.UserID] = rec
	if user.CustomerID != "" {
		s.customers[user.CustomerID] = &domain.Customer{
			CustomerID:  user.CustomerID,
			FullName:    user.FullName,
			PhoneNumber: user.PhoneNumber,
			Email:       user.Email,
		}
	}
	return nil
}

func buildSeats(tripID string) []*domain.Seat {
	seats := make([]*domain.Seat, 0, 16)
	for _, row := range []string{"A", "B"} {
		for i := 1; i <= 8; i++ {
			number := fmt.Sprintf("%s%d", row, i)
			seats = append(seats, &domain.Seat{
				SeatID:     tripID + "-" + number,
				TripID:     tripID,
				SeatNumber: number,
				Booked:     false,
			})
		}
	}
	return seats
}

// Authenticate checks credentials and returns the user snapshot.
func (s *Store) Authenticate(phone, password string) (*domain.User, error) {
	s.mu.Lock()
	rec, ok := s.usersByPhone[phone]
	s.mu.Unlock()
	if !ok {
		return nil, util.NewUnauthorized("invalid phone number or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)); err != nil {
		return nil, util.NewUnauthorized("invalid phone number or password")
	}
	if !rec.Active {
		return nil, util.NewForbidden("account suspended")
	}
	user := rec.User
	return &user, nil
}

// HasPhone reports whether a phone number is already registered.
func (s *Store) HasPhone(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.usersByPhone[phone]
	return ok
}

// IssueOTP generates and stores a verification code for the phone number.
func (s *Store) IssueOTP(phone string) string {
	code := fmt.Sprintf("%06d", rand.IntN(1000000))
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps[phone] = code
	return code
}

// OTPFor exposes the pending code, for the dev log and tests.
func (s *Store) OTPFor(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.otps[phone]
}

// VerifyOTP consumes a matching code and marks the phone as verified.
func (s *Store) VerifyOTP(phone, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.otps[phone]; !ok || code != otp {
		return util.NewValidationError("invalid or expired OTP")
	}
	delete(s.otps, phone)
	s.verified[phone] = true
	return nil
}

// Register creates a customer account for a verified phone number.
func (s *Store) Register(req domain.RegisterRequest) (*domain.User, error) {
	if req.FullName == "" || req.PhoneNumber == "" || req.Password == "" {
		return nil, util.NewValidationError("fullName, phoneNumber and password are required")
	}
	if s.HasPhone(req.PhoneNumber) {
		return nil, util.NewConflict("phone number already registered")
	}

	s.mu.Lock()
	verified := s.verified[req.PhoneNumber]
	delete(s.verified, req.PhoneNumber)
	s.mu.Unlock()
	if !verified {
		return nil, util.NewValidationError("phone number not verified")
	}

	user := domain.User{
		UserID:      "U-" + shortID(),
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		UserRole:    domain.RoleCustomer,
		CustomerID:  "CUS-" + shortID(),
	}
	if err := s.addUser(user, req.Password); err != nil {
		return nil, util.NewInternalError(err)
	}
	return &user, nil
}

// ResetPassword consumes a reset code and replaces the password hash.
func (s *Store) ResetPassword(phone, otp, newPassword string) error {
	if newPassword == "" {
		return util.NewValidationError("newPassword is required")
	}
	s.mu.Lock()
	rec, ok := s.usersByPhone[phone]
	code, hasCode := s.otps[phone]
	s.mu.Unlock()
	if !ok {
		return util.NewNotFound("account")
	}
	if !hasCode || code != otp {
		return util.NewValidationError("invalid or expired OTP")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return util.NewInternalError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.otps, phone)
	rec.PasswordHash = string(hash)
	return nil
}

// RequestPhoneChange stages a phone replacement for the user and issues a
// code to the new number.
func (s *Store) RequestPhoneChange(userID, newPhone string) (string, error) {
	if newPhone == "" {
		return "", util.NewValidationError("newPhoneNumber is required")
	}
	if s.HasPhone(newPhone) {
		return "", util.NewConflict("phone number already registered")
	}
	code := fmt.Sprintf("%06d", rand.IntN(1000000))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.usersByID[userID]; !ok {
		return "", util.NewNotFound("account")
	}
	s.phoneChanges[userID] = pendingPhoneChange{NewPhone: newPhone, OTP: code}
	return code, nil
}

// PhoneChangeOTP exposes the pending phone-change code, for tests.
func (s *Store) PhoneChangeOTP(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phoneChanges[userID].OTP
}

// VerifyPhoneChange completes a staged phone replacement.
func (s *Store) VerifyPhoneChange(userID, newPhone, otp string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.phoneChanges[userID]
	if !ok || pending.NewPhone != newPhone || pending.OTP != otp {
		return nil, util.NewValidationError("invalid or expired OTP")
	}
	rec, ok := s.usersByID[userID]
	if !ok {
		return nil, util.NewNotFound("account")
	}
	delete(s.phoneChanges, userID)
	delete(s.usersByPhone, rec.User.PhoneNumber)
	rec.User.PhoneNumber = newPhone
	s.usersByPhone[newPhone] = rec
	if cust, ok := s.customers[rec.User.CustomerID]; ok {
		cust.PhoneNumber = newPhone
	}
	user := rec.User
	return &user, nil
}

// SearchTrips filters trips by origin, destination and departure day.
func (s *Store) SearchTrips(origin, destination, date string) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Trip
	for _, trip := range s.trips {
		if origin != "" && !strings.Contains(strings.ToLower(trip.Origin), strings.ToLower(origin)) {
			continue
		}
		if destination != "" && !strings.Contains(strings.ToLower(trip.Destination), strings.ToLower(destination)) {
			continue
		}
		if date != "" && trip.DepartureTime.Format("2006-01-02") != date {
			continue
		}
		copied := *trip
		copied.AvailableSeats = s.freeSeats(trip.TripID)
		result = append(result, copied)
	}
	return result
}

func (s *Store) freeSeats(tripID string) int {
	free := 0
	for _, seat := range s.seats[tripID] {
		if !seat.Booked {
			free++
		}
	}
	return free
}

// TripSeats returns the seat map for a trip.
func (s *Store) TripSeats(tripID string) ([]domain.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats, ok := s.seats[tripID]
	if !ok {
		return nil, util.NewNotFound("trip")
	}
	result := make([]domain.Seat, 0, len(seats))
	for _, seat := range seats {
		result = append(result, *seat)
	}
	return result, nil
}

// MyTrips lists trips where the user is assigned as driver or assistant.
func (s *Store) MyTrips(userID string) []domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Trip
	for _, trip := range s.trips {
		if trip.DriverID == userID || trip.AssistantID == userID {
			copied := *trip
			copied.AvailableSeats = s.freeSeats(trip.TripID)
			result = append(result, copied)
		}
	}
	return result
}

// UpdateTripStatus moves a trip through its lifecycle.
func (s *Store) UpdateTripStatus(tripID string, update domain.TripStatusUpdate) (*domain.Trip, error) {
	if !update.Status.Valid() {
		return nil, util.NewValidationError("unknown trip status")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[tripID]
	if !ok {
		return nil, util.NewNotFound("trip")
	}
	trip.Status = update.Status
	copied := *trip
	copied.AvailableSeats = s.freeSeats(tripID)
	return &copied, nil
}

// CreateInvoice books the requested seats and records the invoice.
func (s *Store) CreateInvoice(customerID string, req domain.BookingRequest) (*domain.Invoice, error) {
	if req.TripID == "" || len(req.SeatNumbers) == 0 {
		return nil, util.NewValidationError("tripId and seatNumbers are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	trip, ok := s.trips[req.TripID]
	if !ok {
		return nil, util.NewNotFound("trip")
	}

	seatsByNumber := make(map[string]*domain.Seat, len(s.seats[req.TripID]))
	for _, seat := range s.seats[req.TripID] {
		seatsByNumber[seat.SeatNumber] = seat
	}
	for _, number := range req.SeatNumbers {
		seat, ok := seatsByNumber[number]
		if !ok {
			return nil, util.NewValidationError(fmt.Sprintf("seat %s does not exist", number))
		}
		if seat.Booked {
			return nil, util.NewConflict(fmt.Sprintf("seat %s already booked", number))
		}
	}
	for _, number := range req.SeatNumbers {
		seatsByNumber[number].Booked = true
	}

	invoice := &domain.Invoice{
		InvoiceID:     "INV-" + shortID(),
		CustomerID:    customerID,
		TripID:        req.TripID,
		SeatNumbers:   append([]string{}, req.SeatNumbers...),
		TotalAmount:   trip.Price * float64(len(req.SeatNumbers)),
		PaymentMethod: req.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	s.invoices = append(s.invoices, invoice)
	return invoice, nil
}

// InvoicesByCustomer lists a customer's invoices.
func (s *Store) InvoicesByCustomer(customerID string) []domain.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Invoice
	for _, invoice := range s.invoices {
		if invoice.CustomerID == customerID {
			result = append(result, *invoice)
		}
	}
	return result
}

// Customer returns the profile record for a customer id.
func (s *Store) Customer(customerID string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cust, ok := s.customers[customerID]
	if !ok {
		return nil, util.NewNotFound("customer")
	}
	copied := *cust
	return &copied, nil
}

// UpdateCustomer applies non-empty profile fields and keeps the user record
// in sync.
func (s *Store) UpdateCustomer(customerID string, update domain.ProfileUpdate) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cust, ok := s.customers[customerID]
	if !ok {
		return nil, util.NewNotFound("customer")
	}
	if update.FullName != "" {
		cust.FullName = update.FullName
	}
	if update.Email != "" {
		cust.Email = update.Email
	}
	if update.Address != "" {
		cust.Address = update.Address
	}
	for _, rec := range s.usersByID {
		if rec.User.CustomerID == customerID {
			rec.User.FullName = cust.FullName
			if update.Email != "" {
				rec.User.Email = update.Email
			}
		}
	}
	copied := *cust
	return &copied, nil
}

func shortID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}
