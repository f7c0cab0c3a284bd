// Copyright (c) Abstract Machines
// SPDX-License-Identifier: Apache-2.0

package authority

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"math/big"
	"time"

	"github.com/absmach/certmgmt"
	"github.com/absmach/certmgmt/internal/uuid"
	"github.com/absmach/supermq/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	CommonName         = "AbstractMachines_CertMgmt_ca"
	Organization       = "AbstractMachines"
	OrganizationalUnit = "AbstractMachines_ca"
	emailAddress       = "info@abstractmachines.fr"
	rootCAKeyBits      = 2048
	rootCAValidity     = time.Hour * 24 * 365 * 5

	// DefaultValidityPeriod is the lifetime of issued certificates.
	DefaultValidityPeriod = time.Hour * 24 * 365
)

var (
	serialNumberLimit = new(big.Int).Lsh(big.NewInt(1), 128)
	oidEmailAddress   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}
)

type service struct {
	repo       Repository
	idp        uuid.IDProvider
	cfg        Config
	hashCost   int
	rootCACert *x509.Certificate
	rootCAKey  *rsa.PrivateKey
}

var _ Service = (*service)(nil)

// NewService returns a service signing with a freshly generated root CA.
func NewService(repo Repository, idp uuid.IDProvider, cfg Config, opts ...Option) (Service, error) {
	cert, key, err := generateRootCA()
	if err != nil {
		return &service{}, err
	}
	if cfg.ValidityPeriod <= 0 {
		cfg.ValidityPeriod = DefaultValidityPeriod
	}

	svc := &service{
		repo:       repo,
		idp:        idp,
		cfg:        cfg,
		hashCost:   bcrypt.DefaultCost,
		rootCACert: cert,
		rootCAKey:  key,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Option configures the service.
type Option func(*service)

// WithHashCost sets the bcrypt cost of password hashes.
func WithHashCost(cost int) Option {
	return func(s *service) {
		s.hashCost = cost
	}
}

func (s *service) Register(ctx context.Context, userName, password string) error {
	id := certmgmt.NewIdentity(userName, password)
	if err := id.Validate(); err != nil {
		return errors.Wrap(ErrMalformedEntity, err)
	}
	hash, err := bcrypt.GenerateFromPassword(id.Password, s.hashCost)
	if err != nil {
		return errors.Wrap(ErrMalformedEntity, err)
	}
	user := User{
		Name:         userName,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.SaveUser(ctx, user); err != nil {
		return errors.Wrap(ErrCreateEntity, err)
	}
	return nil
}

// Sign verifies the CSR, checks that the common name is the requesting
// user and either issues the certificate or queues the request.
func (s *service) Sign(ctx context.Context, req SignRequest) (SignResult, error) {
	user, err := s.authenticate(ctx, req.Identity)
	if err != nil {
		return SignResult{}, err
	}
	csr, err := parseCSR(req.CSR, user.Name)
	if err != nil {
		return SignResult{}, err
	}
	class, err := issuedClass(req.Class)
	if err != nil {
		return SignResult{}, err
	}

	if req.Renew {
		issued, err := s.repo.ListCerts(ctx, user.Name, class)
		if err != nil {
			return SignResult{}, errors.Wrap(ErrViewEntity, err)
		}
		if len(issued) == 0 {
			return SignResult{}, errors.Wrap(certmgmt.ErrNotFound, ErrNothingToRenew)
		}
	}

	if s.cfg.RequireApproval {
		id, err := s.idp.ID()
		if err != nil {
			return SignResult{}, err
		}
		pr := PendingRequest{
			ID:        id,
			UserName:  user.Name,
			Class:     class,
			CSR:       req.CSR,
			Renewal:   req.Renew,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.CreatePending(ctx, pr); err != nil {
			return SignResult{}, errors.Wrap(ErrCreateEntity, err)
		}
		return SignResult{Queued: true, RequestID: id}, nil
	}

	cert, err := s.issue(ctx, user.Name, class, req.Renew, csr)
	if err != nil {
		return SignResult{}, err
	}
	return SignResult{Certificate: cert}, nil
}

func (s *service) Approve(ctx context.Context, requestID string) (Certificate, error) {
	pr, err := s.repo.RetrievePending(ctx, requestID)
	if err != nil {
		return Certificate{}, errors.Wrap(ErrViewEntity, err)
	}
	csr, err := parseCSR(pr.CSR, pr.UserName)
	if err != nil {
		return Certificate{}, err
	}
	cert, err := s.issue(ctx, pr.UserName, pr.Class, pr.Renewal, csr)
	if err != nil {
		return Certificate{}, err
	}
	if err := s.repo.RemovePending(ctx, pr.ID); err != nil {
		return Certificate{}, errors.Wrap(ErrRemoveEntity, err)
	}
	return cert, nil
}

func (s *service) Lookup(ctx context.Context, userName string, class certmgmt.CertClass) ([]Certificate, error) {
	if err := validateLookup(userName, class); err != nil {
		return nil, err
	}
	certs, err := s.repo.ListCerts(ctx, userName, class)
	if err != nil {
		return nil, errors.Wrap(ErrViewEntity, err)
	}
	if len(certs) == 0 {
		return nil, certmgmt.ErrNotFound
	}
	return certs, nil
}

func (s *service) IsPending(ctx context.Context, userName string, class certmgmt.CertClass) (bool, error) {
	if err := validateLookup(userName, class); err != nil {
		return false, err
	}
	count, err := s.repo.CountPending(ctx, userName, class)
	if err != nil {
		return false, errors.Wrap(ErrViewEntity, err)
	}
	return count > 0, nil
}

func (s *service) StoreArchive(ctx context.Context, id certmgmt.Identity, archive Archive) error {
	user, err := s.authenticate(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case archive.Name == "":
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingArchiveName)
	case archive.TimeString == "":
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingTimeString)
	case len(archive.PFX) == 0:
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingPayload)
	}
	archive.UserName = user.Name
	archive.UpdatedAt = time.Now().UTC()
	if err := s.repo.SaveArchive(ctx, archive); err != nil {
		return errors.Wrap(ErrCreateEntity, err)
	}
	return nil
}

func (s *service) FetchArchive(ctx context.Context, id certmgmt.Identity, name string) (Archive, error) {
	user, err := s.authenticate(ctx, id)
	if err != nil {
		return Archive{}, err
	}
	if name == "" {
		return Archive{}, errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingArchiveName)
	}
	archive, err := s.repo.RetrieveArchive(ctx, user.Name, name)
	if err != nil {
		return Archive{}, errors.Wrap(ErrViewEntity, err)
	}
	return archive, nil
}

func (s *service) RemoveArchive(ctx context.Context, id certmgmt.Identity, name string) error {
	user, err := s.authenticate(ctx, id)
	if err != nil {
		return err
	}
	if name == "" {
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingArchiveName)
	}
	if err := s.repo.RemoveArchive(ctx, user.Name, name); err != nil {
		return errors.Wrap(ErrRemoveEntity, err)
	}
	return nil
}

func (s *service) ListArchives(ctx context.Context, id certmgmt.Identity) ([]Archive, error) {
	user, err := s.authenticate(ctx, id)
	if err != nil {
		return nil, err
	}
	archives, err := s.repo.ListArchives(ctx, user.Name)
	if err != nil {
		return nil, errors.Wrap(ErrViewEntity, err)
	}
	if archives == nil {
		archives = []Archive{}
	}
	return archives, nil
}

func (s *service) CACert(_ context.Context) (*x509.Certificate, error) {
	if s.rootCACert == nil {
		return nil, ErrRootCANotFound
	}
	return s.rootCACert, nil
}

func (s *service) authenticate(ctx context.Context, id certmgmt.Identity) (User, error) {
	if err := id.Validate(); err != nil {
		return User{}, errors.Wrap(ErrMalformedEntity, err)
	}
	name := string(id.UserName)
	user, err := s.repo.RetrieveUser(ctx, name)
	switch {
	case err == nil:
	case errors.Contains(err, certmgmt.ErrNotFound) && s.cfg.AutoRegister:
		if err := s.Register(ctx, name, string(id.Password)); err != nil {
			return User{}, err
		}
		return User{Name: name}, nil
	case errors.Contains(err, certmgmt.ErrNotFound):
		return User{}, certmgmt.ErrAuthentication
	default:
		return User{}, errors.Wrap(ErrViewEntity, err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, id.Password); err != nil {
		return User{}, certmgmt.ErrAuthentication
	}
	return user, nil
}

// issue signs csr with the root CA and stores the certificate.
func (s *service) issue(ctx context.Context, userName string, class certmgmt.CertClass, renewal bool, csr *x509.CertificateRequest) (Certificate, error) {
	if s.rootCACert == nil || s.rootCAKey == nil {
		return Certificate{}, ErrRootCANotFound
	}
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return Certificate{}, err
	}

	now := time.Now().UTC()
	keyUsage, extKeyUsage := usages(class)
	template := x509.Certificate{
		SerialNumber:          serialNumber,
		Subject:               csr.Subject,
		EmailAddresses:        csr.EmailAddresses,
		NotBefore:             now,
		NotAfter:              now.Add(s.cfg.ValidityPeriod),
		KeyUsage:              keyUsage,
		ExtKeyUsage:           extKeyUsage,
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, s.rootCACert, csr.PublicKey, s.rootCAKey)
	if err != nil {
		return Certificate{}, err
	}
	cert := Certificate{
		SerialNumber: serialNumber.String(),
		UserName:     userName,
		Class:        class,
		DER:          der,
		Renewal:      renewal,
		ExpiryTime:   template.NotAfter,
		CreatedAt:    now,
	}
	if err := s.repo.CreateCert(ctx, cert); err != nil {
		return Certificate{}, errors.Wrap(ErrCreateEntity, err)
	}

	return cert, nil
}

func parseCSR(der []byte, userName string) (*x509.CertificateRequest, error) {
	if len(der) == 0 {
		return nil, errors.Wrap(ErrMalformedCSR, certmgmt.ErrMissingCSR)
	}
	csr, err := x509.ParseCertificateRequest(der)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedCSR, err)
	}
	if err := csr.CheckSignature(); err != nil {
		return nil, errors.Wrap(ErrMalformedCSR, err)
	}
	if csr.Subject.CommonName != userName {
		return nil, ErrSubjectMismatch
	}
	return csr, nil
}

// issuedClass maps All to Identity and rejects unknown classes.
func issuedClass(class certmgmt.CertClass) (certmgmt.CertClass, error) {
	switch class {
	case certmgmt.CertClassAll:
		return certmgmt.CertClassIdentity, nil
	case certmgmt.CertClassIdentity, certmgmt.CertClassSigning, certmgmt.CertClassEncryption:
		return class, nil
	default:
		return class, errors.Wrap(ErrMalformedEntity, certmgmt.ErrUnknownCertClass)
	}
}

func usages(class certmgmt.CertClass) (x509.KeyUsage, []x509.ExtKeyUsage) {
	switch class {
	case certmgmt.CertClassSigning:
		return x509.KeyUsageDigitalSignature | x509.KeyUsageContentCommitment, []x509.ExtKeyUsage{x509.ExtKeyUsageEmailProtection}
	case certmgmt.CertClassEncryption:
		return x509.KeyUsageKeyEncipherment | x509.KeyUsageDataEncipherment, []x509.ExtKeyUsage{x509.ExtKeyUsageEmailProtection}
	default:
		return x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment, []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth}
	}
}

func validateLookup(userName string, class certmgmt.CertClass) error {
	if userName == "" {
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrMissingUserName)
	}
	if _, err := class.LookupPath(); err != nil {
		return errors.Wrap(ErrMalformedEntity, certmgmt.ErrUnknownCertClass)
	}
	return nil
}

func generateRootCA() (*x509.Certificate, *rsa.PrivateKey, error) {
	privateKey, err := rsa.GenerateKey(rand.Reader, rootCAKeyBits)
	if err != nil {
		return nil, nil, err
	}

	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	if err != nil {
		return nil, nil, err
	}

	certTemplate := &x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization:       []string{Organization},
			OrganizationalUnit: []string{OrganizationalUnit},
			CommonName:         CommonName,
			SerialNumber:       serialNumber.String(),
			ExtraNames: []pkix.AttributeTypeAndValue{
				{
					Type:  oidEmailAddress,
					Value: emailAddress,
				},
			},
		},
		NotBefore:             time.Now(),
		NotAfter:              time.Now().Add(rootCAValidity),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, certTemplate, certTemplate, &privateKey.PublicKey, privateKey)
	if err != nil {
		return nil, nil, err
	}

	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, nil, err
	}

	return cert, privateKey, nil
}
