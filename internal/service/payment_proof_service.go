package service

import (
	"github.com/land-deals/backend/internal/logger"
	"github.com/land-deals/backend/internal/models"
	"github.com/land-deals/backend/internal/storage"
)

// AddProof stores an uploaded proof file and records it against a payment.
func (s *PaymentService) AddProof(actorID uint, paymentID uint, fileName, docType string, data []byte) (*PaymentView, error) {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}

	relPath, err := s.store.Save(storage.PaymentDir(payment.DealID, paymentID), fileName, data)
	if err != nil {
		return nil, err
	}

	proof := &models.PaymentProof{
		PaymentID:  paymentID,
		FilePath:   relPath,
		FileName:   fileName,
		DocType:    docType,
		UploadedBy: actorID,
	}
	if err := s.proofs.Create(proof); err != nil {
		if removeErr := s.store.Remove(relPath); removeErr != nil {
			logger.Warnw("proof_file_orphaned", "file", relPath, "error", removeErr)
		}
		return nil, err
	}

	logger.Infow("payment_proof_uploaded",
		"payment_id", paymentID,
		"proof_id", proof.ID,
		"file", fileName,
	)
	return s.Get(paymentID)
}

// ProofFile resolves a proof to its absolute path and original file name
// for download.
func (s *PaymentService) ProofFile(paymentID, proofID uint) (absPath, fileName string, err error) {
	proof, err := s.proofs.GetByID(proofID)
	if err != nil {
		return "", "", err
	}
	if proof == nil || proof.PaymentID != paymentID {
		return "", "", ErrProofNotFound
	}
	absPath, err = s.store.Open(proof.FilePath)
	if err != nil {
		return "", "", ErrProofNotFound
	}
	return absPath, proof.FileName, nil
}

// DeleteProof removes a proof row and schedules its file for removal.
func (s *PaymentService) DeleteProof(actorID uint, actorRole string, paymentID, proofID uint) error {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		return err
	}
	if payment == nil {
		return ErrPaymentNotFound
	}

	proof, err := s.proofs.GetByID(proofID)
	if err != nil {
		return err
	}
	if proof == nil || proof.PaymentID != paymentID {
		return ErrProofNotFound
	}
	if !canModify(actorID, actorRole, proof.UploadedBy) {
		return ErrForbidden
	}

	if err := s.proofs.Delete(proofID); err != nil {
		return err
	}
	s.cleanupProofFile(proof.FilePath)
	return nil
}
