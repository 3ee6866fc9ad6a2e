package password

// DummyHash is a fixed, well-formed PHC string that verifies no password.
// When a credential lookup finds no account, the engine verifies the
// candidate against this hash so the expensive derivation always runs and
// response latency does not reveal whether the account exists. The
// parameters match [DefaultConfig]; the digest is random bytes with no
// known preimage.
//
// Do not remove or shortcut this constant: skipping the dummy verification
// reopens a user-enumeration side channel.
const DummyHash = "$argon2id$v=19$m=15000,t=2,p=1$FkWG0jkkt3l1Fu2LssiPug==$aewFXM708a0i7VAaS9YdMW8F4VCcqpIOkVrshcEXf7o="
