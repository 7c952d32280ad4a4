package http

import (
	"crypto/ecdsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/validator"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/asset"
	"github.com/x-xyz/marketplace/domain/listing"
	"github.com/x-xyz/marketplace/middleware"
	"github.com/x-xyz/marketplace/service/store/memory"
	assetRepository "github.com/x-xyz/marketplace/stores/asset/repository"
	assetUsecase "github.com/x-xyz/marketplace/stores/asset/usecase"
	authMiddleware "github.com/x-xyz/marketplace/stores/auth/delivery/http/middleware"
	authUsecase "github.com/x-xyz/marketplace/stores/auth/usecase"
	listingRepository "github.com/x-xyz/marketplace/stores/listing/repository"
	listingUsecase "github.com/x-xyz/marketplace/stores/listing/usecase"
)

const (
	token  = domain.Address("0xe7f1725e7734ce288f8367e1bb143e90bb3f0512")
	nft    = domain.Address("0x9fe46736679d2d9a65f0992f2272de9f3c7fa6e0")
	market = domain.Address("0x5fbdb2315678afecb367f032d93f642f64180aa3")
)

type account struct {
	address domain.Address
	token   string
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
}

type HandlerTestSuite struct {
	suite.Suite

	ctx     ctx.Ctx
	e       *echo.Echo
	ledger  asset.Ledger
	listing listing.Usecase

	seller account
	buyer  account
	admin  account
}

func (s *HandlerTestSuite) newAccount(auth domain.AuthUsecase) account {
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	return s.login(auth, key)
}

func (s *HandlerTestSuite) login(auth domain.AuthUsecase, key *ecdsa.PrivateKey) account {
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex()).ToLower()
	sig, err := ethereum.SignMessage(key, []byte(auth.SigningMessage(address)))
	s.Require().NoError(err)
	tkn, err := auth.SignToken(s.ctx, address, sig)
	s.Require().NoError(err)
	return account{address, tkn}
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = ctx.Background()

	store := memory.New()
	ledgerRepo := assetRepository.NewMemory()
	repo := listingRepository.NewMemory()
	activities := listingRepository.NewMemoryActivity()
	store.Register(ledgerRepo, repo, activities)

	s.ledger = assetUsecase.New(ledgerRepo, store)
	s.Require().NoError(s.ledger.UpsertRegistry(s.ctx, asset.Registry{Address: token, Kind: asset.KindFungible}))
	s.Require().NoError(s.ledger.UpsertRegistry(s.ctx, asset.Registry{Address: nft, Kind: asset.KindNonFungible}))
	s.listing = listingUsecase.New(listingUsecase.Config{Market: market}, repo, activities, s.ledger, store, nil)

	auth := authUsecase.New("secret", "sign in as %s", time.Hour)
	s.seller = s.newAccount(auth)
	s.buyer = s.newAccount(auth)
	s.admin = s.newAccount(auth)

	s.e = echo.New()
	s.e.Validator = validator.NewCustomValidator(validator.New())
	s.e.Use(middleware.InitMiddleware().AddContext())
	New(s.e, s.listing, authMiddleware.New(auth, []string{s.admin.address.ToLowerStr()}))
}

func (s *HandlerTestSuite) TearDownTest() {
	s.listing.Close()
}

func (s *HandlerTestSuite) do(method, path, body string, as *account) (int, response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if as != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+as.token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	res := response{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res), rec.Body.String())
	return rec.Code, res
}

func (s *HandlerTestSuite) listAsset(id domain.TokenId, price string) listing.ListingId {
	s.Require().NoError(s.ledger.MintNonFungible(s.ctx, nft, s.seller.address, id))
	s.Require().NoError(s.ledger.ApproveNonFungible(s.ctx, nft, s.seller.address, market, id, true))

	body := `{"nonFungibleRegistry":"` + nft.ToLowerStr() + `","assetId":"` + string(id) +
		`","price":"` + price + `","fungibleRegistry":"` + token.ToLowerStr() + `"}`
	code, res := s.do(http.MethodPost, "/listings", body, &s.seller)
	s.Require().Equal(http.StatusCreated, code, string(res.Data))

	created := createResult{}
	s.Require().NoError(json.Unmarshal(res.Data, &created))
	return created.Id
}

func (s *HandlerTestSuite) TestCreateAndGet() {
	id := s.listAsset("7", "100")
	s.Equal(listing.ListingId(0), id)

	code, res := s.do(http.MethodGet, "/listings/0", "", nil)
	s.Equal(http.StatusOK, code)
	l := listing.Listing{}
	s.Require().NoError(json.Unmarshal(res.Data, &l))
	s.True(l.Listed)
	s.True(l.Seller.Equals(s.seller.address))
	s.True(l.Price.Equal(decimal.NewFromInt(100)))

	code, _ = s.do(http.MethodGet, "/listings/9", "", nil)
	s.Equal(http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/listings/abc", "", nil)
	s.Equal(http.StatusBadRequest, code)
}

func (s *HandlerTestSuite) TestCreateRequiresAuth() {
	code, _ := s.do(http.MethodPost, "/listings", `{}`, nil)
	s.Equal(http.StatusBadRequest, code)

	bad := &account{token: "garbage"}
	code, _ = s.do(http.MethodPost, "/listings", `{}`, bad)
	s.Equal(http.StatusUnauthorized, code)
}

func (s *HandlerTestSuite) TestCreateRejectsInvalidParams() {
	code, res := s.do(http.MethodPost, "/listings", `{"nonFungibleRegistry":"0x1","assetId":"1","price":"1","fungibleRegistry":"0x2"}`, &s.seller)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("fail", res.Status)

	code, _ = s.do(http.MethodPost, "/listings", `{"nonFungibleRegistry":"`+nft.ToLowerStr()+`","assetId":"1","price":"1.5","fungibleRegistry":"`+token.ToLowerStr()+`"}`, &s.seller)
	s.Equal(http.StatusBadRequest, code)
}

func (s *HandlerTestSuite) TestCreateNotOwner() {
	s.Require().NoError(s.ledger.MintNonFungible(s.ctx, nft, s.buyer.address, "1"))
	body := `{"nonFungibleRegistry":"` + nft.ToLowerStr() + `","assetId":"1","price":"1","fungibleRegistry":"` + token.ToLowerStr() + `"}`
	code, _ := s.do(http.MethodPost, "/listings", body, &s.seller)
	s.Equal(http.StatusForbidden, code)
}

func (s *HandlerTestSuite) TestBuy() {
	id := s.listAsset("7", "100")

	code, _ := s.do(http.MethodPost, "/listings/0/buy", "", &s.buyer)
	s.Equal(http.StatusPaymentRequired, code)

	s.Require().NoError(s.ledger.MintFungible(s.ctx, token, s.buyer.address, decimal.NewFromInt(100)))
	s.Require().NoError(s.ledger.ApproveFungible(s.ctx, token, s.buyer.address, market, decimal.NewFromInt(100)))

	code, res := s.do(http.MethodPost, "/listings/0/buy", "", &s.buyer)
	s.Require().Equal(http.StatusOK, code, string(res.Data))

	owner, err := s.ledger.OwnerOf(s.ctx, nft, "7")
	s.Require().NoError(err)
	s.True(owner.Equals(s.buyer.address))

	code, _ = s.do(http.MethodPost, "/listings/0/buy", "", &s.buyer)
	s.Equal(http.StatusNotFound, code)

	code, res = s.do(http.MethodGet, "/listings/0/activities", "", nil)
	s.Equal(http.StatusOK, code)
	acts := []listing.Activity{}
	s.Require().NoError(json.Unmarshal(res.Data, &acts))
	s.Require().Len(acts, 2)
	s.Equal(id, acts[1].ListingId)
	s.Equal(listing.ActivityTypeSold, acts[1].Type)
}

func (s *HandlerTestSuite) TestCancel() {
	s.listAsset("7", "100")
	s.listAsset("8", "100")

	code, _ := s.do(http.MethodPost, "/listings/0/cancel", "", &s.buyer)
	s.Equal(http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/listings/0/cancel", "", &s.seller)
	s.Equal(http.StatusOK, code)

	// admins cancel as the marketplace
	code, _ = s.do(http.MethodPost, "/admin/listings/1/cancel", "", &s.buyer)
	s.Equal(http.StatusForbidden, code)
	code, _ = s.do(http.MethodPost, "/admin/listings/1/cancel", "", &s.admin)
	s.Equal(http.StatusOK, code)

	code, res := s.do(http.MethodGet, "/listings?onlyActive=true", "", nil)
	s.Equal(http.StatusOK, code)
	s.JSONEq(`[]`, string(res.Data))

	code, res = s.do(http.MethodGet, "/listings", "", nil)
	s.Equal(http.StatusOK, code)
	all := []listing.Entry{}
	s.Require().NoError(json.Unmarshal(res.Data, &all))
	s.Require().Len(all, 2)
	s.Equal(listing.StatusCancelled, all[0].Listing.Status)
	s.Equal(listing.StatusCancelled, all[1].Listing.Status)
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
